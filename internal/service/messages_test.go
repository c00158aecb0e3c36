package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"task-assistant/config"
	"task-assistant/internal/contract"
	"task-assistant/internal/i18n"
	"task-assistant/internal/model"
)

func testRenderer() *renderer {
	cfg := &config.Config{
		App: config.App{
			BaseURL:         "http://app.local",
			DefaultTimezone: "UTC",
			DefaultLanguage: "en",
		},
	}
	return newRenderer(cfg, i18n.NewLocalizer("en"))
}

func TestRenderer_TaskReminder(t *testing.T) {
	r := testRenderer()
	user := testUser()
	task := &model.Task{
		ID:   31,
		Name: "pay rent",
		Time: sql.NullTime{Time: time.Date(2025, 6, 15, 11, 0, 0, 0, time.UTC), Valid: true},
	}

	msg := r.taskReminder(user, task)

	assert.Contains(t, msg.HTML, "pay rent")
	assert.Contains(t, msg.HTML, "2025-06-15 11:00")
	assert.Contains(t, msg.HTML, "http://app.local/tasks/31")
	// No assistant attached: the generic assistant label is used.
	assert.Contains(t, msg.HTML, "personal assistant")
	assert.Equal(t, "Reminder: pay rent", msg.Subject)
	assert.NotContains(t, msg.Text, "<b>")
}

func TestRenderer_TaskReminderUsesAssistantName(t *testing.T) {
	r := testRenderer()
	task := &model.Task{
		ID:        31,
		Name:      "water plants",
		Assistant: &model.Assistant{Name: "Garden Bot"},
	}

	msg := r.taskReminder(testUser(), task)

	assert.Contains(t, msg.HTML, "Garden Bot")
	assert.NotContains(t, msg.HTML, "personal assistant")
}

func TestRenderer_ScriptResultTemplateOverride(t *testing.T) {
	r := testRenderer()
	assistant := &model.Assistant{
		Name:     "morning check",
		Template: &model.MessageTemplate{Body: "Custom: {script_name} said {output}"},
	}
	script := &model.Script{Name: "disk usage"}
	result := &contract.ExecutionResult{Success: true, Output: "42% used"}

	msg := r.scriptResult(testUser(), assistant, script, result)

	assert.Equal(t, "Custom: disk usage said 42% used", msg.HTML)
}

func TestRenderer_ScriptResultDefaultText(t *testing.T) {
	r := testRenderer()
	assistant := &model.Assistant{Name: "morning check"}
	script := &model.Script{Name: "disk usage"}
	result := &contract.ExecutionResult{Success: false, Output: "exit status 1"}

	msg := r.scriptResult(testUser(), assistant, script, result)

	assert.Contains(t, msg.HTML, "disk usage")
	assert.Contains(t, msg.HTML, model.ExecutionStateFailed)
	assert.Contains(t, msg.HTML, "exit status 1")
}

func TestRenderer_DailySummaryEmpty(t *testing.T) {
	r := testRenderer()

	msg := r.dailySummary(testUser(), nil)

	assert.Contains(t, msg.HTML, "No tasks for today")
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "bold and code", stripTags("<b>bold</b> and <code>code</code>"))
}
