package domain

// MedicalRecord 医疗档案（对应 data.json 的 "medicalrecords" 段）
// 身份键为 (firstName, lastName)
// Birthdate 存储格式固定为 dd/mm/yyyy（存储契约的一部分，不得更改）
// 年龄不落盘，每次读取时由 Birthdate 相对当前时间推导
type MedicalRecord struct {
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Birthdate   string   `json:"birthdate"`
	Medications []string `json:"medications"`
	Allergies   []string `json:"allergies"`
}

// FullName 展示用全名（日志、错误消息）
func (m MedicalRecord) FullName() string {
	return m.FirstName + " " + m.LastName
}
