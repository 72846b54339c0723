package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconTeam   = "\U000F0849"
	IconMember = ""
	IconFile   = ""
	IconCheck  = ""
	IconCross  = ""
)

// Notification icons
var (
	IconNotifyInfo    = ""
	IconNotifyWarning = ""
	IconNotifyError   = ""
)
