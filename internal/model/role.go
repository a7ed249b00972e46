package model

// Role is one value from the canonical role vocabulary. Every backend maps
// its native role codes onto this set; codes with no mapping resolve to
// RolePane rather than leaking a native value.
type Role string

const (
	RolePane           Role = "pane" // fallback for unmapped native roles
	RoleWindow         Role = "window"
	RoleTitleBar       Role = "titlebar"
	RoleMenuBar        Role = "menubar"
	RoleMenu           Role = "menu"
	RoleMenuItem       Role = "menuitem"
	RoleButton         Role = "button"
	RoleCheckBox       Role = "checkbox"
	RoleRadioButton    Role = "radiobutton"
	RoleComboBox       Role = "combobox"
	RoleEdit           Role = "edit"
	RoleStaticText     Role = "statictext"
	RoleLink           Role = "link"
	RoleGraphic        Role = "graphic"
	RoleList           Role = "list"
	RoleListItem       Role = "listitem"
	RoleTree           Role = "tree"
	RoleTreeItem       Role = "treeitem"
	RoleTable          Role = "table"
	RoleRow            Role = "row"
	RoleCell           Role = "cell"
	RoleColumnHeader   Role = "columnheader"
	RoleRowHeader      Role = "rowheader"
	RoleTabControl     Role = "tabcontrol"
	RoleTab            Role = "tab"
	RoleToolBar        Role = "toolbar"
	RoleToolTip        Role = "tooltip"
	RoleStatusBar      Role = "statusbar"
	RoleProgressBar    Role = "progressbar"
	RoleScrollBar      Role = "scrollbar"
	RoleSlider         Role = "slider"
	RoleSpinButton     Role = "spinbutton"
	RoleSeparator      Role = "separator"
	RoleDocument       Role = "document"
	RoleGroup          Role = "group"
	RoleDialog         Role = "dialog"
	RoleApplication    Role = "application"
	RoleAlert          Role = "alert"
	RoleCaret          Role = "caret"
	RoleCursor         Role = "cursor"
	RoleSound          Role = "sound"
	RoleEquation       Role = "equation"
	RoleClock          Role = "clock"
	RoleParagraph      Role = "paragraph"
	RoleHeading        Role = "heading"
	RoleSection        Role = "section"
	RoleForm           Role = "form"
	RoleEmbeddedObject Role = "embeddedobject"
	RoleTerminal       Role = "terminal"
	RoleDesktop        Role = "desktop"
)
