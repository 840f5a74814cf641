package variant

import (
	"strings"
)

// ==================== 规格属性 ====================

// Attribute 可供顾客选择的规格维度
type Attribute int

const (
	AttrSize Attribute = iota
	AttrColor
	AttrDepth
	AttrFirmness
)

// Priority 引导流程的固定询问顺序
var Priority = []Attribute{AttrSize, AttrColor, AttrDepth, AttrFirmness}

func (a Attribute) String() string {
	switch a {
	case AttrSize:
		return "size"
	case AttrColor:
		return "color"
	case AttrDepth:
		return "depth"
	case AttrFirmness:
		return "firmness"
	default:
		return "unknown"
	}
}

// Soft depth/firmness 属于"软必选"：未询问时由系统取默认值
func (a Attribute) Soft() bool {
	return a == AttrDepth || a == AttrFirmness
}

// ParseAttribute 解析前端传入的属性名
func ParseAttribute(s string) (Attribute, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "size":
		return AttrSize, true
	case "color", "colour":
		return AttrColor, true
	case "depth":
		return AttrDepth, true
	case "firmness":
		return AttrFirmness, true
	}
	return 0, false
}

// ==================== 取值归一化 ====================

// 占位值，一律视为"未设置"
var placeholders = map[string]struct{}{
	"":         {},
	"n/a":      {},
	"na":       {},
	"standard": {},
}

// Normalize 去除首尾空白，并判断是否为有意义的取值
// 所有读取属性值的地方都必须经过这里
func Normalize(value string) (string, bool) {
	v := strings.TrimSpace(value)
	if _, ok := placeholders[strings.ToLower(v)]; ok {
		return "", false
	}
	return v, true
}

// normalizePtr 稀疏字段 (nil 即缺失)
func normalizePtr(value *string) string {
	if value == nil {
		return ""
	}
	v, _ := Normalize(*value)
	return v
}

// valueKey 去重与比较用的键，大小写不敏感
func valueKey(value string) string {
	return strings.ToLower(value)
}

// SameValue 两个取值是否指向同一选项
func SameValue(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
