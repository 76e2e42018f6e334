package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// ErrStorageUnavailable 底层 JSON 文件不可读/不可写/不可解析
var ErrStorageUnavailable = errors.New("storage unavailable")

// Document 整个 JSON 文档（顶层 key -> 原始段内容）
// 用 RawMessage 保存各段，替换单段时其它段（包括未知段）原样保留
type Document map[string]json.RawMessage

// DocumentStore 单一数据文件的唯一属主。
// 所有段写入都经过同一把锁串行化，并且每次写前重读磁盘最新文档，
// 再整体回写（写临时文件 + rename），因此：
//   - 不同实体段的并发变更不会互相丢写
//   - 不会出现半截文件
type DocumentStore struct {
	path   string
	mu     sync.Mutex
	logger *zap.Logger
}

func NewDocumentStore(path string, logger *zap.Logger) *DocumentStore {
	return &DocumentStore{path: path, logger: logger}
}

// Load 读取并解析整个文档。文件缺失或不可解析视为致命错误，不降级为空文档。
func (s *DocumentStore) Load() (Document, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrStorageUnavailable, s.path, err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrStorageUnavailable, s.path, err)
	}
	return doc, nil
}

// Section 读取文档并把指定段反序列化到 out。段缺失同样视为存储错误。
func (s *DocumentStore) Section(name string, out any) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}
	raw, ok := doc[name]
	if !ok {
		return fmt.Errorf("%w: section %q missing in %s", ErrStorageUnavailable, name, s.path)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: parsing section %q: %v", ErrStorageUnavailable, name, err)
	}
	return nil
}

// ReplaceSection 用 v 替换指定段并整体落盘。
// 读-改-写全程持锁：先重读磁盘最新文档（而非调用方构造时的快照），
// 只替换本段，其余段保持磁盘上的最新内容。
func (s *DocumentStore) ReplaceSection(name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.Load()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: marshaling section %q: %v", ErrStorageUnavailable, name, err)
	}
	doc[name] = raw

	return s.write(doc)
}

// write 序列化整个文档，写临时文件后 rename 覆盖，避免写一半进程退出留下损坏文件
func (s *DocumentStore) write(doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshaling document: %v", ErrStorageUnavailable, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file in %s: %v", ErrStorageUnavailable, dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing %s: %v", ErrStorageUnavailable, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing %s: %v", ErrStorageUnavailable, tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replacing %s: %v", ErrStorageUnavailable, s.path, err)
	}

	if s.logger != nil {
		s.logger.Debug("document written", zap.String("path", s.path), zap.Int("bytes", len(data)))
	}
	return nil
}
