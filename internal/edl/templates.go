package edl

// ObjectKind names an EDM object template.
type ObjectKind string

const (
	KindStaticText  ObjectKind = "static_text"
	KindLine        ObjectKind = "line"
	KindCircle      ObjectKind = "circle"
	KindRectangle   ObjectKind = "rectangle"
	KindArc         ObjectKind = "arc"
	KindGIF         ObjectKind = "gif_image"
	KindPNG         ObjectKind = "png_image"
	KindBar         ObjectKind = "bar"
	KindTextMonitor ObjectKind = "text_monitor"
	KindTextControl ObjectKind = "text_control"
	KindTextUpdate  ObjectKind = "text_update"
)

// ObjectTemplate is one entry of the template table.
type ObjectTemplate struct {
	Kind  ObjectKind
	Lines Template
}

// Fixed directive lines emitted through block tokens.
const (
	FillDirective     = "fill"
	VerticalDirective = `orientation "vertical"`
)

// screenHeader opens every EDL file; it is followed by a blank line.
var screenHeader = Template{
	"4 0 1",
	"beginScreenProperties",
	"major 4",
	"minor 0",
	"release 1",
	"x " + TokX,
	"y " + TokY,
	"w " + TokWidth,
	"h " + TokHeight,
	`font "helvetica-medium-r-18.0"`,
	`ctlFont "helvetica-medium-r-8.0"`,
	`btnFont "helvetica-medium-r-18.0"`,
	"fgColor index 14",
	"bgColor index 4",
	"textColor index 14",
	"ctlFgColor1 index 30",
	"ctlFgColor2 index 32",
	"ctlBgColor1 index 34",
	"ctlBgColor2 index 35",
	"topShadowColor index 37",
	"botShadowColor index 44",
	"snapToGrid",
	"gridSize 5",
	"endScreenProperties",
	"",
}

// object builds a template from the common object preamble, the body lines
// and the closing marker.
func object(comment, class, major, minor, release string, body ...string) Template {
	t := Template{
		"# (" + comment + ")",
		"object " + class,
		"beginObjectProperties",
		"major " + major,
		"minor " + minor,
		"release " + release,
		"x " + TokX,
		"y " + TokY,
		"w " + TokWidth,
		"h " + TokHeight,
	}
	t = append(t, body...)
	return append(t, "endObjectProperties", "")
}

// textDisplay is shared by the text monitor and text control objects.
func textDisplay(comment, class, objType string) Template {
	return object(comment, class, "4", "7", "0",
		`controlPv "`+TokPV+`"`,
		`font "helvetica-medium-r-18.0"`,
		"fgColor index 14",
		"bgColor index 51",
		"topShadowColor index 50",
		"botShadowColor index 10",
		"useDisplayBg",
		"autoHeight",
		"limitsFromDb",
		"nullColor index 14",
		"useHexPrefix",
		"newPos",
		`objType "`+objType+`"`,
	)
}

var templates = map[ObjectKind]ObjectTemplate{
	KindStaticText: {
		Kind: KindStaticText,
		Lines: object("Static Text", "activeXTextClass", "4", "1", "1",
			`font "helvetica-bold-r-14.0"`,
			`fontAlign "center"`,
			"fgColor index 14",
			"bgColor index 0",
			"useDisplayBg",
			"value {",
			`  "`+TokText+`"`,
			"}",
			"autoSize",
		),
	},
	KindLine: {
		Kind: KindLine,
		Lines: object("Lines", "activeLineClass", "4", "0", "1",
			"lineColor index "+TokColor,
			"fillColor index 51",
			"lineWidth "+TokLineWidth,
			"numPoints "+TokNumPoints,
			"xPoints {",
			TokXPoints,
			"}",
			"yPoints {",
			TokYPoints,
			"}",
		),
	},
	KindCircle: {
		Kind: KindCircle,
		Lines: object("Circle", "activeCircleClass", "4", "0", "0",
			"lineColor index 14",
			TokFill,
			"fillColor index "+TokColor,
		),
	},
	KindRectangle: {
		Kind: KindRectangle,
		Lines: object("Rectangle", "activeRectangleClass", "4", "0", "0",
			"lineColor index 14",
			TokFill,
			"fillColor index "+TokColor,
		),
	},
	KindArc: {
		Kind: KindArc,
		Lines: object("Arc", "activeArcClass", "4", "0", "0",
			"lineColor index 14",
			"fillColor index 51",
		),
	},
	KindGIF: {
		Kind: KindGIF,
		Lines: object("GIF Image", "cfcf6c8a_dbeb_11d2_8a97_00104b8742df", "4", "0", "0",
			`file "`+TokFile+`"`,
		),
	},
	KindPNG: {
		Kind: KindPNG,
		Lines: object("PNG Image", "activePngClass", "4", "0", "0",
			`file "`+TokFile+`"`,
		),
	},
	KindBar: {
		Kind: KindBar,
		Lines: object("Bar", "activeBarClass", "4", "1", "1",
			"indicatorColor index "+TokColor,
			"fgColor index 14",
			"bgColor index 9",
			`indicatorPv "`+TokPV+`"`,
			`origin "0"`,
			`font "helvetica-medium-r-8.0"`,
			"border",
			`precision "10"`,
			`min "`+TokMin+`"`,
			`max "`+TokMax+`"`,
			`scaleFormat "FFloat"`,
			TokOrientation,
		),
	},
	KindTextMonitor: {
		Kind:  KindTextMonitor,
		Lines: textDisplay("Text Monitor", "activeXTextDspClass:noedit", "monitors"),
	},
	KindTextControl: {
		Kind:  KindTextControl,
		Lines: textDisplay("Text Control", "activeXTextDspClass", "controls"),
	},
	KindTextUpdate: {
		Kind: KindTextUpdate,
		Lines: object("Textupdate", "TextupdateClass", "10", "0", "0",
			`controlPv "`+TokPV+`"`,
			"fgColor index 14",
			"fgAlarm",
			"bgColor index 51",
			"fill",
			`font "helvetica-medium-r-14.0"`,
		),
	},
}

// Lookup returns the template for kind.
func Lookup(kind ObjectKind) (ObjectTemplate, bool) {
	t, ok := templates[kind]
	return t, ok
}
