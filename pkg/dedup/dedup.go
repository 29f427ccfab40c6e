// Package dedup 按等价键去重：同一个键只保留第一次出现的记录
//
// Resolve不会对输入排序，结果完全取决于调用方给出的顺序。
// 仓储层的FindAll统一按主键升序返回，因此"先入库者保留"。
package dedup

// Result 去重结果
type Result[T any] struct {
	Survivors []T // 每个键保留的第一条记录（保持原相对顺序）
	Removed   []T // 之后出现的重复记录
}

// Resolve 单次遍历完成去重
func Resolve[T any](records []T, key func(T) string) Result[T] {
	res := Result[T]{
		Survivors: make([]T, 0, len(records)),
		Removed:   make([]T, 0),
	}

	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		k := key(r)
		if _, dup := seen[k]; dup {
			res.Removed = append(res.Removed, r)
			continue
		}
		seen[k] = struct{}{}
		res.Survivors = append(res.Survivors, r)
	}
	return res
}

// Key 拼接多个字段作为复合键
// 使用\x1f(单元分隔符)连接，避免 "a|b"+"c" 与 "a"+"b|c" 碰撞
func Key(fields ...string) string {
	n := 0
	for _, f := range fields {
		n += len(f) + 1
	}
	b := make([]byte, 0, n)
	for i, f := range fields {
		if i > 0 {
			b = append(b, 0x1f)
		}
		b = append(b, f...)
	}
	return string(b)
}
