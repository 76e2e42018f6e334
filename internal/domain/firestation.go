package domain

// FireStation 消防站覆盖映射（对应 data.json 的 "firestations" 段）
// 身份键为 address：同一地址只允许一个站号
// Station 是字符串，不做数字校验（与存量数据保持一致）
type FireStation struct {
	Address string `json:"address"`
	Station string `json:"station"`
}
