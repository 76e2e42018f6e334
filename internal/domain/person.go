package domain

// Person 居民领域模型（对应 data.json 的 "persons" 段）
// 身份键为 (firstName, lastName)，大小写敏感精确匹配
type Person struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// FullName 展示用全名（日志、错误消息）；身份比较始终按 (firstName, lastName) 元组
func (p Person) FullName() string {
	return p.FirstName + " " + p.LastName
}
