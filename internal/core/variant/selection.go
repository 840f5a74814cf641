package variant

// ==================== 选择流程状态机 ====================

// Mode 流程模式
type Mode int

const (
	ModeIdle Mode = iota
	// ModeGuided 依次询问全部必选属性，完成后自动加购
	ModeGuided
	// ModeDirect 只打开指定属性的选择框，不推进队列
	ModeDirect
)

func (m Mode) String() string {
	switch m {
	case ModeGuided:
		return "guided"
	case ModeDirect:
		return "direct"
	default:
		return "idle"
	}
}

// ParseMode 解析前端传入的模式
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "guided", "":
		return ModeGuided, true
	case "direct":
		return ModeDirect, true
	}
	return ModeIdle, false
}

// Phase 状态机所处阶段
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePrompting
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhasePrompting:
		return "prompting"
	case PhaseComplete:
		return "complete"
	default:
		return "idle"
	}
}

// Step 一次状态迁移的结果
type Step struct {
	Phase     Phase
	Mode      Mode
	Prompt    Attribute // Phase == PhasePrompting 时有效
	Options   []string  // 选择框可选项
	Current   string    // 选择框当前值
	Pending   []Attribute
	Chosen    Choices
	Completed bool // 本次迁移进入 Complete，调用方应构建购物车行项目
	Ignored   bool // 事件与当前状态不符，已忽略
}

// Option 状态机配置
type Option func(*Machine)

// WithSoftPrompts 是否在引导流程中询问深度/软硬度
// 关闭时这两个属性始终由 ApplySoftDefaults 取默认值
func WithSoftPrompts(enabled bool) Option {
	return func(m *Machine) {
		m.softPrompts = enabled
	}
}

// Machine 单个商品详情页的选择流程
// 只由 UI 事件同步驱动，不做任何阻塞等待：停在 Prompting 直到 Answer 或 Cancel 到来
type Machine struct {
	catalog     *Catalog
	req         Requirements
	softPrompts bool

	mode      Mode
	phase     Phase
	prompting Attribute
	chosen    Choices

	lastAnswered    Attribute
	hasLastAnswered bool
}

// NewMachine 目录与必选属性在一次商品浏览中保持不变
func NewMachine(c *Catalog, opts ...Option) *Machine {
	m := &Machine{
		catalog:     c,
		req:         ComputeRequirements(c),
		softPrompts: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Requirements 必选属性
func (m *Machine) Requirements() Requirements {
	return m.req
}

// Chosen 当前选择的副本
func (m *Machine) Chosen() Choices {
	return m.chosen.Clone()
}

// Phase 当前阶段
func (m *Machine) Phase() Phase {
	return m.phase
}

// LastAnswered 最近一次提交的属性
func (m *Machine) LastAnswered() (Attribute, bool) {
	return m.lastAnswered, m.hasLastAnswered
}

// promptable 引导流程会询问的属性
func (m *Machine) promptable(attr Attribute) bool {
	if !m.req.Requires(attr) {
		return false
	}
	return m.softPrompts || !attr.Soft()
}

// Pending 尚未回答的必选属性，按优先级
func (m *Machine) Pending() []Attribute {
	out := make([]Attribute, 0, len(Priority))
	for _, attr := range Priority {
		if m.promptable(attr) && !m.chosen.Has(attr) {
			out = append(out, attr)
		}
	}
	return out
}

// next 下一个需要询问的属性，跳过刚回答过的属性
func (m *Machine) next() (Attribute, bool) {
	for _, attr := range m.Pending() {
		if m.hasLastAnswered && attr == m.lastAnswered {
			continue
		}
		return attr, true
	}
	return 0, false
}

// Start 开始一次流程
// 重复调用 (例如双击) 会重置进行中的流程，而不是叠加；已做出的选择保留
func (m *Machine) Start(mode Mode, priority ...Attribute) Step {
	m.phase = PhaseIdle
	m.hasLastAnswered = false

	if mode == ModeDirect && len(priority) > 0 && m.req.Requires(priority[0]) {
		// 直接打开指定属性，即使之前已经选过
		m.mode = ModeDirect
		return m.open(priority[0])
	}

	// 指定属性无需选择时，按引导流程处理
	m.mode = ModeGuided
	if attr, ok := m.next(); ok {
		return m.open(attr)
	}
	return m.complete()
}

// Answer 选择框提交
func (m *Machine) Answer(attr Attribute, value string) Step {
	if m.phase != PhasePrompting || attr != m.prompting {
		return m.ignored()
	}
	if !m.chosen.Set(attr, value) {
		// 占位值不算有效回答，选择框保持打开
		return m.ignored()
	}

	m.lastAnswered = attr
	m.hasLastAnswered = true
	m.phase = PhaseIdle

	if m.mode != ModeGuided {
		m.mode = ModeIdle
		return m.step()
	}

	if next, ok := m.next(); ok {
		return m.open(next)
	}
	return m.complete()
}

// Cancel 关闭选择框回到 Idle，不修改已选择的值
// 清除 lastAnswered，之后重新打开同一属性不会被拦截；重复调用无副作用
func (m *Machine) Cancel() Step {
	m.mode = ModeIdle
	m.phase = PhaseIdle
	m.hasLastAnswered = false
	return m.step()
}

// Snapshot 当前状态，不做迁移
func (m *Machine) Snapshot() Step {
	s := m.step()
	if m.phase == PhasePrompting {
		s.Options = m.catalog.Options(m.prompting)
		s.Current, _ = m.chosen.Get(m.prompting)
	}
	return s
}

func (m *Machine) open(attr Attribute) Step {
	m.phase = PhasePrompting
	m.prompting = attr
	return m.Snapshot()
}

func (m *Machine) complete() Step {
	m.phase = PhaseComplete
	s := m.step()
	s.Completed = true
	return s
}

func (m *Machine) ignored() Step {
	s := m.Snapshot()
	s.Ignored = true
	return s
}

func (m *Machine) step() Step {
	s := Step{
		Phase:   m.phase,
		Mode:    m.mode,
		Pending: m.Pending(),
		Chosen:  m.chosen.Clone(),
	}
	if m.phase == PhasePrompting {
		s.Prompt = m.prompting
	}
	return s
}
