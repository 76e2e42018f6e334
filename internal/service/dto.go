package service

// 响应 DTO。字段名是对外 JSON 契约的一部分（历史接口保持不变，
// 包括 mail / medicine / otherMembersList 这些沿用下来的命名）。

// PersonDTO 覆盖名单里的单个居民投影
type PersonDTO struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

// CoveredPersonsListDTO /firestation 响应：站号覆盖的居民与大人/小孩计数
type CoveredPersonsListDTO struct {
	ChildCount     int         `json:"childCount"`
	AdultsCount    int         `json:"adultsCount"`
	CoveredPersons []PersonDTO `json:"coveredPersons"`
}

// FullNameAndAgeDTO childAlert 响应里的成员条目
type FullNameAndAgeDTO struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       int64  `json:"age"`
}

// ChildAlertDTO /childAlert 响应。ChildList 为空是合法结果（地址上只有成年人），
// 与"地址查无此人"（NotFound）是两种不同的情况
type ChildAlertDTO struct {
	ChildList        []FullNameAndAgeDTO `json:"childList"`
	OtherMembersList []FullNameAndAgeDTO `json:"otherMembersList"`
}

// MedicalRecordDTO 档案投影（不含身份字段）
type MedicalRecordDTO struct {
	Medicine  []string `json:"medicine"`
	Allergies []string `json:"allergies"`
}

// PersonAtThisAddressDTO fire / flood 视图里的单个住户投影
type PersonAtThisAddressDTO struct {
	LastName      string           `json:"lastName"`
	Phone         string           `json:"phone"`
	Age           int64            `json:"age"`
	MedicalRecord MedicalRecordDTO `json:"medicalRecord"`
}

// PersonsListInCaseOfFireDTO /fire 响应
type PersonsListInCaseOfFireDTO struct {
	StationNumber        string                   `json:"stationNumber"`
	PersonsAtThisAddress []PersonAtThisAddressDTO `json:"personsAtThisAddress"`
}

// FloodAlertDTO /flood/stations 响应的单个地址分组
type FloodAlertDTO struct {
	Address                  string                   `json:"address"`
	PersonsAtThisAddressList []PersonAtThisAddressDTO `json:"personsAtThisAddressList"`
}

// PersonInfoLastNameDTO /personInfo 响应条目
type PersonInfoLastNameDTO struct {
	LastName      string           `json:"lastName"`
	Address       string           `json:"address"`
	Age           int64            `json:"age"`
	Mail          string           `json:"mail"`
	MedicalRecord MedicalRecordDTO `json:"medicalRecord"`
}
