package repository

import "errors"

var (
	// ErrNotFound 身份键没有命中任何记录
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists 创建时身份键冲突
	ErrAlreadyExists = errors.New("resource already exists")
)

// fullNameKey (firstName, lastName) 身份元组。
// 去重必须用元组而不是拼接字符串：("A B","C") 和 ("A","B C") 是两个不同的人
type fullNameKey struct {
	first string
	last  string
}
