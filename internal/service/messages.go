package service

import (
	"fmt"
	"strconv"
	"strings"

	"task-assistant/config"
	"task-assistant/internal/channel"
	"task-assistant/internal/contract"
	"task-assistant/internal/i18n"
	"task-assistant/internal/model"
	"task-assistant/pkg/utils"
)

// digestLimit caps the number of tasks listed in one overdue digest.
const digestLimit = 10

// renderer turns scheduler events into localized channel.Messages.
type renderer struct {
	cfg       *config.Config
	localizer *i18n.Localizer
}

func newRenderer(cfg *config.Config, localizer *i18n.Localizer) *renderer {
	return &renderer{cfg: cfg, localizer: localizer}
}

func (r *renderer) taskReminder(user *model.User, task *model.Task) channel.Message {
	assistantName := r.localizer.T(user.Language, i18n.KeyPersonalAssistant, nil)
	if task.Assistant != nil && task.Assistant.Name != "" {
		assistantName = task.Assistant.Name
	}

	due := ""
	if task.Time.Valid {
		due = utils.FormatInZone(task.Time.Time, user.Timezone, r.cfg.App.DefaultTimezone)
	}

	params := map[string]string{
		"user":        user.Name,
		"assistant":   assistantName,
		"task":        task.Name,
		"description": task.Description,
		"due":         due,
		"link":        fmt.Sprintf("%s/tasks/%d", r.cfg.App.BaseURL, task.ID),
	}

	html := r.localizer.T(user.Language, i18n.KeyTaskReminder, params)
	return channel.Message{
		Subject: r.localizer.T(user.Language, i18n.KeyTaskReminderSubj, params),
		HTML:    html,
		Text:    stripTags(html),
	}
}

// scriptResult renders a script run outcome. When the assistant carries a
// message template, the template body replaces the built-in text.
func (r *renderer) scriptResult(user *model.User, assistant *model.Assistant, script *model.Script, result *contract.ExecutionResult) channel.Message {
	state := model.ExecutionStateSuccess
	if !result.Success {
		state = model.ExecutionStateFailed
	}

	params := map[string]string{
		"user":        user.Name,
		"assistant":   assistant.Name,
		"script_name": script.Name,
		"output":      utils.TruncateRunes(result.Output, 2000),
		"state":       state,
	}

	var html string
	if assistant.Template != nil && assistant.Template.Body != "" {
		html = i18n.Render(assistant.Template.Body, params)
	} else {
		html = r.localizer.T(user.Language, i18n.KeyScriptResult, params)
	}

	return channel.Message{
		Subject: r.localizer.T(user.Language, i18n.KeyScriptResultSubj, params),
		HTML:    html,
		Text:    stripTags(html),
	}
}

func (r *renderer) overdueDigest(user *model.User, tasks []model.Task) channel.Message {
	count := strconv.Itoa(len(tasks))

	var b strings.Builder
	b.WriteString(r.localizer.T(user.Language, i18n.KeyOverdueHeader, map[string]string{"count": count}))

	shown := tasks
	if len(shown) > digestLimit {
		shown = shown[:digestLimit]
	}
	for i, task := range shown {
		due := ""
		if task.Time.Valid {
			due = utils.FormatInZone(task.Time.Time, user.Timezone, r.cfg.App.DefaultTimezone)
		}
		b.WriteString("\n")
		b.WriteString(r.localizer.T(user.Language, i18n.KeyOverdueItem, map[string]string{
			"index": strconv.Itoa(i + 1),
			"task":  task.Name,
			"due":   due,
		}))
	}
	if rest := len(tasks) - digestLimit; rest > 0 {
		b.WriteString("\n")
		b.WriteString(r.localizer.T(user.Language, i18n.KeyOverdueMore, map[string]string{
			"count": strconv.Itoa(rest),
		}))
	}

	html := b.String()
	return channel.Message{
		Subject: r.localizer.T(user.Language, i18n.KeyOverdueSubj, map[string]string{"count": count}),
		HTML:    html,
		Text:    stripTags(html),
	}
}

func (r *renderer) dailySummary(user *model.User, tasks []model.Task) channel.Message {
	var html string
	if len(tasks) == 0 {
		html = r.localizer.T(user.Language, i18n.KeySummaryEmpty, nil)
	} else {
		var b strings.Builder
		b.WriteString(r.localizer.T(user.Language, i18n.KeySummaryHeader, map[string]string{
			"count": strconv.Itoa(len(tasks)),
		}))
		for i, task := range tasks {
			at := ""
			if task.Time.Valid {
				at = utils.InZone(task.Time.Time, user.Timezone, r.cfg.App.DefaultTimezone).Format("15:04")
			}
			b.WriteString("\n")
			b.WriteString(r.localizer.T(user.Language, i18n.KeySummaryItem, map[string]string{
				"index": strconv.Itoa(i + 1),
				"task":  task.Name,
				"time":  at,
			}))
		}
		html = b.String()
	}

	return channel.Message{
		Subject: r.localizer.T(user.Language, i18n.KeySummarySubj, nil),
		HTML:    html,
		Text:    stripTags(html),
	}
}

var tagStripper = strings.NewReplacer(
	"<b>", "", "</b>", "",
	"<i>", "", "</i>", "",
	"<code>", "", "</code>", "",
)

// stripTags converts the HTML rendering to the plain-text form used by
// channels without markup support.
func stripTags(s string) string {
	return tagStripper.Replace(s)
}
