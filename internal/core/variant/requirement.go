package variant

// ==================== 属性必选分析 ====================

// Requirements 每个属性是否需要询问顾客
type Requirements struct {
	Size     bool `json:"size"`
	Color    bool `json:"color"`
	Depth    bool `json:"depth"`
	Firmness bool `json:"firmness"`
}

// ComputeRequirements 属性存在 >= 2 个不同的有意义取值时才需要选择
// 只有一个取值 (例如全是 "Standard") 的属性视为固定，永远不弹出选择框
// 目录加载后不会变化，重复调用即可，不做缓存
func ComputeRequirements(c *Catalog) Requirements {
	return Requirements{
		Size:     len(c.Options(AttrSize)) >= 2,
		Color:    len(c.Options(AttrColor)) >= 2,
		Depth:    len(c.Options(AttrDepth)) >= 2,
		Firmness: len(c.Options(AttrFirmness)) >= 2,
	}
}

// Requires 指定属性是否必选
func (r Requirements) Requires(attr Attribute) bool {
	switch attr {
	case AttrSize:
		return r.Size
	case AttrColor:
		return r.Color
	case AttrDepth:
		return r.Depth
	case AttrFirmness:
		return r.Firmness
	}
	return false
}

// Required 按固定优先级返回必选属性
func (r Requirements) Required() []Attribute {
	out := make([]Attribute, 0, len(Priority))
	for _, attr := range Priority {
		if r.Requires(attr) {
			out = append(out, attr)
		}
	}
	return out
}

// None 无需任何选择即可加购
func (r Requirements) None() bool {
	return len(r.Required()) == 0
}
