package variant

// Choices 已做出的选择，保留写入顺序 (即询问顺序)
type Choices struct {
	order  []Attribute
	values map[Attribute]string
}

// NewChoices 从 map 构建，按固定优先级排序；非法取值被丢弃
func NewChoices(m map[Attribute]string) Choices {
	var c Choices
	for _, attr := range Priority {
		if v, ok := m[attr]; ok {
			c.Set(attr, v)
		}
	}
	return c
}

// Set 记录选择；占位值不记录
// 重复设置同一属性只更新取值，不改变顺序
func (c *Choices) Set(attr Attribute, value string) bool {
	v, ok := Normalize(value)
	if !ok {
		return false
	}
	if c.values == nil {
		c.values = make(map[Attribute]string)
	}
	if _, exists := c.values[attr]; !exists {
		c.order = append(c.order, attr)
	}
	c.values[attr] = v
	return true
}

// Get 读取选择
func (c Choices) Get(attr Attribute) (string, bool) {
	v, ok := c.values[attr]
	return v, ok
}

// Has 是否已选择
func (c Choices) Has(attr Attribute) bool {
	_, ok := c.values[attr]
	return ok
}

// Len 已选择数量
func (c Choices) Len() int {
	return len(c.order)
}

// Order 选择顺序
func (c Choices) Order() []Attribute {
	out := make([]Attribute, len(c.order))
	copy(out, c.order)
	return out
}

// Clone 深拷贝
func (c Choices) Clone() Choices {
	out := Choices{order: c.Order()}
	if c.values != nil {
		out.values = make(map[Attribute]string, len(c.values))
		for k, v := range c.values {
			out.values[k] = v
		}
	}
	return out
}

// Map 以属性名为键输出，供 JSON 与日志使用
func (c Choices) Map() map[string]string {
	out := make(map[string]string, len(c.order))
	for _, attr := range c.order {
		out[attr.String()] = c.values[attr]
	}
	return out
}

// ApplySoftDefaults 深度/软硬度为必选但未被询问时，取目录中第一个有意义取值
// 不阻塞下单；不修改入参
func ApplySoftDefaults(c *Catalog, req Requirements, chosen Choices) Choices {
	out := chosen.Clone()
	for _, attr := range Priority {
		if !attr.Soft() || !req.Requires(attr) || out.Has(attr) {
			continue
		}
		if opts := c.Options(attr); len(opts) > 0 {
			out.Set(attr, opts[0])
		}
	}
	return out
}
