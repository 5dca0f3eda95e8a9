package filter

// systemExecutables are shell and OS-internal processes whose windows are
// never offered for capture.
var systemExecutables = []string{
	"startmenuexperiencehost.exe",
	"applicationframehost.exe",
	"peopleexperiencehost.exe",
	"shellexperiencehost.exe",
	"microsoft.notes.exe",
	"systemsettings.exe",
	"textinputhost.exe",
	"searchapp.exe",
	"video.ui.exe",
	"searchui.exe",
	"lockapp.exe",
	"cortana.exe",
	"gamebar.exe",
	"tabtip.exe",
	"time.exe",
}

// systemPrefixes match whole families of OS-internal executables.
var systemPrefixes = []string{
	"windowsinternal",
}

// gameBlacklist holds applications that game capture cannot hook.
var gameBlacklist = []string{
	"explorer",
	"steam",
	"battle.net",
	"galaxyclient",
	"skype",
	"uplay",
	"origin",
	"devenv",
	"taskmgr",
	"chrome",
	"discord",
	"firefox",
	"systemsettings",
	"applicationframehost",
	"cmd",
	"shellexperiencehost",
	"winstore.app",
	"searchui",
	"lockapp",
	"windowsinternal.composableshell.experiences.textinput.inputapp",
}

// DefaultSystemExecutables returns a copy of the built-in system list.
func DefaultSystemExecutables() []string {
	return append([]string(nil), systemExecutables...)
}

// DefaultBlacklist returns a copy of the built-in game capture blacklist.
func DefaultBlacklist() []string {
	return append([]string(nil), gameBlacklist...)
}
