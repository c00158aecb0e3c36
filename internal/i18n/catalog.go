package i18n

// Message keys used by the dispatcher and scheduler.
const (
	KeyPersonalAssistant = "assistant.personal"
	KeyTaskReminder      = "task.reminder"
	KeyTaskReminderSubj  = "task.reminder.subject"
	KeyScriptResult      = "script.result"
	KeyScriptResultSubj  = "script.result.subject"
	KeyOverdueHeader     = "overdue.header"
	KeyOverdueItem       = "overdue.item"
	KeyOverdueMore       = "overdue.more"
	KeyOverdueSubj       = "overdue.subject"
	KeySummaryHeader     = "summary.header"
	KeySummaryEmpty      = "summary.empty"
	KeySummaryItem       = "summary.item"
	KeySummarySubj       = "summary.subject"
)

var catalog = map[string]map[string]string{
	"en": {
		KeyPersonalAssistant: "personal assistant",
		KeyTaskReminder:      "⏰ <b>Task reminder</b>\n\n📝 <b>{task}</b>\n{description}\n📅 Due: {due}\n🤖 {assistant}\n\n🔗 {link}",
		KeyTaskReminderSubj:  "Reminder: {task}",
		KeyScriptResult:      "🤖 <b>{assistant}</b>\n\n📜 {script_name}: {state}\n\n{output}",
		KeyScriptResultSubj:  "{script_name} finished: {state}",
		KeyOverdueHeader:     "⚠️ <b>You have {count} overdue tasks</b>\n",
		KeyOverdueItem:       "{index}. {task} (due {due})",
		KeyOverdueMore:       "… and {count} more",
		KeyOverdueSubj:       "Overdue tasks: {count}",
		KeySummaryHeader:     "🌅 <b>Good morning!</b>\n\nYou have {count} tasks today:\n",
		KeySummaryEmpty:      "🎉 <b>Good morning!</b>\n\nNo tasks for today. Enjoy your day!",
		KeySummaryItem:       "{index}. {task} ({time})",
		KeySummarySubj:       "Your tasks for today",
	},
	"ar": {
		KeyPersonalAssistant: "المساعد الشخصي",
		KeyTaskReminder:      "⏰ <b>تذكير بمهمة</b>\n\n📝 <b>{task}</b>\n{description}\n📅 موعد الاستحقاق: {due}\n🤖 {assistant}\n\n🔗 {link}",
		KeyTaskReminderSubj:  "تذكير: {task}",
		KeyScriptResult:      "🤖 <b>{assistant}</b>\n\n📜 {script_name}: {state}\n\n{output}",
		KeyScriptResultSubj:  "انتهى {script_name}: {state}",
		KeyOverdueHeader:     "⚠️ <b>لديك {count} مهام متأخرة</b>\n",
		KeyOverdueItem:       "{index}. {task} (الاستحقاق {due})",
		KeyOverdueMore:       "… و {count} مهام أخرى",
		KeyOverdueSubj:       "مهام متأخرة: {count}",
		KeySummaryHeader:     "🌅 <b>صباح الخير!</b>\n\nعندك {count} مهام اليوم:\n",
		KeySummaryEmpty:      "🎉 <b>صباح الخير!</b>\n\nلا توجد مهام لليوم. استمتع بيومك!",
		KeySummaryItem:       "{index}. {task} ({time})",
		KeySummarySubj:       "مهامك لليوم",
	},
}
