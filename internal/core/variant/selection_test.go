package variant

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullCatalog() *Catalog {
	return buildCatalog(
		row{sku: "Q-G-25-S", size: "Queen", color: "Grey", depth: "25cm", firmness: "Soft", current: 800},
		row{sku: "K-B-30-F", size: "King", color: "Blue", depth: "30cm", firmness: "Firm", current: 1000},
	)
}

func TestMachine_GuidedRunCompletesOnce(t *testing.T) {
	c := scenarioC()
	m := NewMachine(c)

	builds := 0
	handle := func(s Step) {
		if s.Completed {
			builds++
		}
	}

	step := m.Start(ModeGuided)
	handle(step)
	require.Equal(t, PhasePrompting, step.Phase)
	assert.Equal(t, AttrSize, step.Prompt)
	assert.Equal(t, []string{"Small", "Large"}, step.Options)

	step = m.Answer(AttrSize, "Large")
	handle(step)
	require.Equal(t, PhasePrompting, step.Phase)
	assert.Equal(t, AttrColor, step.Prompt)

	step = m.Answer(AttrColor, "Blue")
	handle(step)
	assert.Equal(t, PhaseComplete, step.Phase)
	assert.True(t, step.Completed)

	// 完成后的迟到事件不会再次触发
	step = m.Answer(AttrColor, "Red")
	handle(step)
	assert.True(t, step.Ignored)

	assert.Equal(t, 1, builds)
	assert.Equal(t, map[string]string{"size": "Large", "color": "Blue"}, step.Chosen.Map())
}

func TestMachine_NoReopenAfterAnswer(t *testing.T) {
	m := NewMachine(scenarioC())
	m.Start(ModeGuided)
	step := m.Answer(AttrSize, "Small")

	assert.NotContains(t, step.Pending, AttrSize)
	assert.NotEqual(t, AttrSize, step.Prompt)
	last, ok := m.LastAnswered()
	assert.True(t, ok)
	assert.Equal(t, AttrSize, last)
}

func TestMachine_PriorityOrder(t *testing.T) {
	m := NewMachine(fullCatalog())

	var prompted []Attribute
	step := m.Start(ModeGuided)
	for step.Phase == PhasePrompting {
		prompted = append(prompted, step.Prompt)
		step = m.Answer(step.Prompt, step.Options[len(step.Options)-1])
	}
	assert.Equal(t, []Attribute{AttrSize, AttrColor, AttrDepth, AttrFirmness}, prompted)
	assert.True(t, step.Completed)
}

func TestMachine_SoftPromptsDisabled(t *testing.T) {
	c := fullCatalog()
	m := NewMachine(c, WithSoftPrompts(false))

	step := m.Start(ModeGuided)
	step = m.Answer(step.Prompt, "King")
	step = m.Answer(step.Prompt, "Blue")
	require.True(t, step.Completed)

	chosen := ApplySoftDefaults(c, m.Requirements(), step.Chosen)
	depth, _ := chosen.Get(AttrDepth)
	firm, _ := chosen.Get(AttrFirmness)
	assert.Equal(t, "25cm", depth)
	assert.Equal(t, "Soft", firm)
}

func TestMachine_DirectReopensAnsweredAttribute(t *testing.T) {
	m := NewMachine(scenarioC())
	m.Start(ModeGuided)
	m.Answer(AttrSize, "Small")
	m.Answer(AttrColor, "Red")

	step := m.Start(ModeDirect, AttrSize)
	require.Equal(t, PhasePrompting, step.Phase)
	assert.Equal(t, ModeDirect, step.Mode)
	assert.Equal(t, AttrSize, step.Prompt)
	assert.Equal(t, "Small", step.Current)

	// 直接模式不推进队列
	step = m.Answer(AttrSize, "Large")
	assert.Equal(t, PhaseIdle, step.Phase)
	assert.False(t, step.Completed)
	v, _ := step.Chosen.Get(AttrSize)
	assert.Equal(t, "Large", v)
}

func TestMachine_DirectOnFixedAttributeFallsBackToGuided(t *testing.T) {
	m := NewMachine(scenarioA())
	step := m.Start(ModeDirect, AttrColor)
	assert.Equal(t, ModeGuided, step.Mode)
	assert.Equal(t, AttrSize, step.Prompt)
}

func TestMachine_CancelKeepsChoicesAndIsIdempotent(t *testing.T) {
	m := NewMachine(scenarioC())
	m.Start(ModeGuided)
	m.Answer(AttrSize, "Small")

	step := m.Cancel()
	assert.Equal(t, PhaseIdle, step.Phase)
	assert.True(t, step.Chosen.Has(AttrSize))
	_, ok := m.LastAnswered()
	assert.False(t, ok)

	again := m.Cancel()
	assert.Equal(t, step.Phase, again.Phase)
	assert.Equal(t, step.Chosen.Map(), again.Chosen.Map())

	// 取消后重新打开同一属性不被拦截
	step = m.Start(ModeDirect, AttrSize)
	assert.Equal(t, PhasePrompting, step.Phase)
	assert.Equal(t, AttrSize, step.Prompt)
}

func TestMachine_CancelWhileIdle(t *testing.T) {
	m := NewMachine(scenarioC())
	step := m.Cancel()
	assert.Equal(t, PhaseIdle, step.Phase)
	assert.Equal(t, 0, step.Chosen.Len())
}

func TestMachine_SecondStartResets(t *testing.T) {
	m := NewMachine(scenarioC())
	m.Start(ModeGuided)
	m.Answer(AttrSize, "Small")

	// 双击：第二次 Start 覆盖进行中的流程
	step := m.Start(ModeGuided)
	require.Equal(t, PhasePrompting, step.Phase)
	assert.Equal(t, AttrColor, step.Prompt)

	step = m.Start(ModeDirect, AttrSize)
	assert.Equal(t, AttrSize, step.Prompt)

	// 旧流程的提交被忽略
	step = m.Answer(AttrColor, "Red")
	assert.True(t, step.Ignored)
	assert.Equal(t, AttrSize, step.Prompt)
}

func TestMachine_PlaceholderAnswerIgnored(t *testing.T) {
	m := NewMachine(scenarioC())
	m.Start(ModeGuided)
	step := m.Answer(AttrSize, "  n/a ")
	assert.True(t, step.Ignored)
	assert.Equal(t, PhasePrompting, step.Phase)
	assert.Equal(t, AttrSize, step.Prompt)
}

func TestMachine_GuidedRestartCompletesImmediatelyWhenAnswered(t *testing.T) {
	m := NewMachine(scenarioA())
	m.Start(ModeGuided)
	step := m.Answer(AttrSize, "Small")
	require.True(t, step.Completed)

	step = m.Start(ModeGuided)
	assert.True(t, step.Completed)
}

func TestMachine_EmptyCatalog(t *testing.T) {
	c := NewCatalog(nil)
	m := NewMachine(c)
	step := m.Start(ModeGuided)
	assert.True(t, step.Completed)

	res := Resolve(c, step.Chosen, decimal.NewFromInt(49))
	assert.True(t, res.Synthetic)
}

func TestParseModeAndAttribute(t *testing.T) {
	mode, ok := ParseMode("direct")
	assert.True(t, ok)
	assert.Equal(t, ModeDirect, mode)
	_, ok = ParseMode("other")
	assert.False(t, ok)

	attr, ok := ParseAttribute(" Colour ")
	assert.True(t, ok)
	assert.Equal(t, AttrColor, attr)
	_, ok = ParseAttribute("weight")
	assert.False(t, ok)
}
