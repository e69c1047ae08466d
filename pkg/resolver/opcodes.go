package resolver

import "github.com/zurustar/ira/pkg/ast"

// slotKind says how one operand of an opcode is read from a raw block.
type slotKind int

const (
	// slotInput is a required input; absence is InvalidInputFormat.
	slotInput slotKind = iota
	// slotCondition is a boolean input; Scratch omits it when empty.
	slotCondition
	// slotSubstack is a statement input; Scratch omits it when empty.
	slotSubstack
	// slotField is a plain field, yielding a string literal.
	slotField
	// slotVariableField is a field naming a variable by id.
	slotVariableField
	// slotListField is a field naming a list by id.
	slotListField
)

type slot struct {
	name string
	kind slotKind
}

func in(name string) slot        { return slot{name, slotInput} }
func cond(name string) slot      { return slot{name, slotCondition} }
func sub(name string) slot       { return slot{name, slotSubstack} }
func field(name string) slot     { return slot{name, slotField} }
func varField(name string) slot  { return slot{name, slotVariableField} }
func listField(name string) slot { return slot{name, slotListField} }

type opcodeSpec struct {
	op    ast.Op
	slots []slot
}

// opcodes maps wire opcodes to operations. Slots are listed in the order of
// Operation.Args. Opcodes missing here degrade to a placeholder.
var opcodes = map[string]opcodeSpec{
	// motion
	"motion_movesteps":        {ast.MotionMove, []slot{in("STEPS")}},
	"motion_turnright":        {ast.MotionTurnRight, []slot{in("DEGREES")}},
	"motion_turnleft":         {ast.MotionTurnLeft, []slot{in("DEGREES")}},
	"motion_goto":             {ast.MotionGoTo, []slot{in("TO")}},
	"motion_gotoxy":           {ast.MotionGoToXY, []slot{in("X"), in("Y")}},
	"motion_glideto":          {ast.MotionGlideTo, []slot{in("SECS"), in("TO")}},
	"motion_glidesecstoxy":    {ast.MotionGlideToXY, []slot{in("SECS"), in("X"), in("Y")}},
	"motion_pointindirection": {ast.MotionPointInDirection, []slot{in("DIRECTION")}},
	"motion_pointtowards":     {ast.MotionPointTowards, []slot{in("TOWARDS")}},
	"motion_changexby":        {ast.MotionChangeXBy, []slot{in("DX")}},
	"motion_setx":             {ast.MotionSetX, []slot{in("X")}},
	"motion_changeyby":        {ast.MotionChangeYBy, []slot{in("DY")}},
	"motion_sety":             {ast.MotionSetY, []slot{in("Y")}},
	"motion_ifonedgebounce":   {ast.MotionIfOnEdgeBounce, nil},
	"motion_setrotationstyle": {ast.MotionSetRotationStyle, []slot{field("STYLE")}},
	"motion_xposition":        {ast.MotionXPosition, nil},
	"motion_yposition":        {ast.MotionYPosition, nil},
	"motion_direction":        {ast.MotionDirection, nil},

	// looks
	"looks_sayforsecs":              {ast.LooksSayForSecs, []slot{in("MESSAGE"), in("SECS")}},
	"looks_say":                     {ast.LooksSay, []slot{in("MESSAGE")}},
	"looks_thinkforsecs":            {ast.LooksThinkForSecs, []slot{in("MESSAGE"), in("SECS")}},
	"looks_think":                   {ast.LooksThink, []slot{in("MESSAGE")}},
	"looks_switchcostumeto":         {ast.LooksSwitchCostumeTo, []slot{in("COSTUME")}},
	"looks_nextcostume":             {ast.LooksNextCostume, nil},
	"looks_switchbackdropto":        {ast.LooksSwitchBackdropTo, []slot{in("BACKDROP")}},
	"looks_nextbackdrop":            {ast.LooksNextBackdrop, nil},
	"looks_changesizeby":            {ast.LooksChangeSizeBy, []slot{in("CHANGE")}},
	"looks_setsizeto":               {ast.LooksSetSizeTo, []slot{in("SIZE")}},
	"looks_changeeffectby":          {ast.LooksChangeEffectBy, []slot{field("EFFECT"), in("CHANGE")}},
	"looks_seteffectto":             {ast.LooksSetEffectTo, []slot{field("EFFECT"), in("VALUE")}},
	"looks_cleargraphiceffects":     {ast.LooksClearGraphicEffects, nil},
	"looks_show":                    {ast.LooksShow, nil},
	"looks_hide":                    {ast.LooksHide, nil},
	"looks_gotofrontback":           {ast.LooksGoToFrontBack, []slot{field("FRONT_BACK")}},
	"looks_goforwardbackwardlayers": {ast.LooksGoLayers, []slot{field("FORWARD_BACKWARD"), in("NUM")}},
	"looks_costumenumbername":       {ast.LooksCostumeNumberName, []slot{field("NUMBER_NAME")}},
	"looks_backdropnumbername":      {ast.LooksBackdropNumberName, []slot{field("NUMBER_NAME")}},
	"looks_size":                    {ast.LooksSize, nil},

	// sound
	"sound_playuntildone":  {ast.SoundPlayUntilDone, []slot{in("SOUND_MENU")}},
	"sound_play":           {ast.SoundPlay, []slot{in("SOUND_MENU")}},
	"sound_stopallsounds":  {ast.SoundStopAll, nil},
	"sound_changevolumeby": {ast.SoundChangeVolumeBy, []slot{in("VOLUME")}},
	"sound_setvolumeto":    {ast.SoundSetVolumeTo, []slot{in("VOLUME")}},
	"sound_volume":         {ast.SoundVolume, nil},

	// events
	"event_broadcast":        {ast.EventBroadcast, []slot{in("BROADCAST_INPUT")}},
	"event_broadcastandwait": {ast.EventBroadcastAndWait, []slot{in("BROADCAST_INPUT")}},

	// control
	"control_wait":              {ast.ControlWait, []slot{in("DURATION")}},
	"control_repeat":            {ast.ControlRepeat, []slot{in("TIMES"), sub("SUBSTACK")}},
	"control_forever":           {ast.ControlForever, []slot{sub("SUBSTACK")}},
	"control_if":                {ast.ControlIf, []slot{cond("CONDITION"), sub("SUBSTACK")}},
	"control_if_else":           {ast.ControlIfElse, []slot{cond("CONDITION"), sub("SUBSTACK"), sub("SUBSTACK2")}},
	"control_wait_until":        {ast.ControlWaitUntil, []slot{cond("CONDITION")}},
	"control_repeat_until":      {ast.ControlRepeatUntil, []slot{cond("CONDITION"), sub("SUBSTACK")}},
	"control_stop":              {ast.ControlStop, []slot{field("STOP_OPTION")}},
	"control_create_clone_of":   {ast.ControlCreateCloneOf, []slot{in("CLONE_OPTION")}},
	"control_delete_this_clone": {ast.ControlDeleteThisClone, nil},

	// sensing
	"sensing_touchingobject": {ast.SensingTouchingObject, []slot{in("TOUCHINGOBJECTMENU")}},
	"sensing_touchingcolor":  {ast.SensingTouchingColor, []slot{in("COLOR")}},
	"sensing_distanceto":     {ast.SensingDistanceTo, []slot{in("DISTANCETOMENU")}},
	"sensing_askandwait":     {ast.SensingAskAndWait, []slot{in("QUESTION")}},
	"sensing_answer":         {ast.SensingAnswer, nil},
	"sensing_keypressed":     {ast.SensingKeyPressed, []slot{in("KEY_OPTION")}},
	"sensing_mousedown":      {ast.SensingMouseDown, nil},
	"sensing_mousex":         {ast.SensingMouseX, nil},
	"sensing_mousey":         {ast.SensingMouseY, nil},
	"sensing_loudness":       {ast.SensingLoudness, nil},
	"sensing_timer":          {ast.SensingTimer, nil},
	"sensing_resettimer":     {ast.SensingResetTimer, nil},
	"sensing_current":        {ast.SensingCurrent, []slot{field("CURRENTMENU")}},
	"sensing_dayssince2000":  {ast.SensingDaysSince2000, nil},
	"sensing_username":       {ast.SensingUsername, nil},

	// operators
	"operator_add":       {ast.OperatorAdd, []slot{in("NUM1"), in("NUM2")}},
	"operator_subtract":  {ast.OperatorSubtract, []slot{in("NUM1"), in("NUM2")}},
	"operator_multiply":  {ast.OperatorMultiply, []slot{in("NUM1"), in("NUM2")}},
	"operator_divide":    {ast.OperatorDivide, []slot{in("NUM1"), in("NUM2")}},
	"operator_mod":       {ast.OperatorMod, []slot{in("NUM1"), in("NUM2")}},
	"operator_random":    {ast.OperatorRandom, []slot{in("FROM"), in("TO")}},
	"operator_gt":        {ast.OperatorGreaterThan, []slot{in("OPERAND1"), in("OPERAND2")}},
	"operator_lt":        {ast.OperatorLessThan, []slot{in("OPERAND1"), in("OPERAND2")}},
	"operator_equals":    {ast.OperatorEquals, []slot{in("OPERAND1"), in("OPERAND2")}},
	"operator_and":       {ast.OperatorAnd, []slot{cond("OPERAND1"), cond("OPERAND2")}},
	"operator_or":        {ast.OperatorOr, []slot{cond("OPERAND1"), cond("OPERAND2")}},
	"operator_not":       {ast.OperatorNot, []slot{cond("OPERAND")}},
	"operator_join":      {ast.OperatorJoin, []slot{in("STRING1"), in("STRING2")}},
	"operator_letter_of": {ast.OperatorLetterOf, []slot{in("LETTER"), in("STRING")}},
	"operator_length":    {ast.OperatorLength, []slot{in("STRING")}},
	"operator_contains":  {ast.OperatorContains, []slot{in("STRING1"), in("STRING2")}},
	"operator_round":     {ast.OperatorRound, []slot{in("NUM")}},
	"operator_mathop":    {ast.OperatorMathOp, []slot{field("OPERATOR"), in("NUM")}},

	// data
	"data_setvariableto":     {ast.DataSetVariableTo, []slot{varField("VARIABLE"), in("VALUE")}},
	"data_changevariableby":  {ast.DataChangeVariableBy, []slot{varField("VARIABLE"), in("VALUE")}},
	"data_showvariable":      {ast.DataShowVariable, []slot{varField("VARIABLE")}},
	"data_hidevariable":      {ast.DataHideVariable, []slot{varField("VARIABLE")}},
	"data_addtolist":         {ast.DataAddToList, []slot{listField("LIST"), in("ITEM")}},
	"data_deleteoflist":      {ast.DataDeleteOfList, []slot{listField("LIST"), in("INDEX")}},
	"data_deletealloflist":   {ast.DataDeleteAllOfList, []slot{listField("LIST")}},
	"data_insertatlist":      {ast.DataInsertAtList, []slot{listField("LIST"), in("INDEX"), in("ITEM")}},
	"data_replaceitemoflist": {ast.DataReplaceItemOfList, []slot{listField("LIST"), in("INDEX"), in("ITEM")}},
	"data_itemoflist":        {ast.DataItemOfList, []slot{listField("LIST"), in("INDEX")}},
	"data_itemnumoflist":     {ast.DataItemNumOfList, []slot{listField("LIST"), in("ITEM")}},
	"data_lengthoflist":      {ast.DataLengthOfList, []slot{listField("LIST")}},
	"data_listcontainsitem":  {ast.DataListContainsItem, []slot{listField("LIST"), in("ITEM")}},
	"data_showlist":          {ast.DataShowList, []slot{listField("LIST")}},
	"data_hidelist":          {ast.DataHideList, []slot{listField("LIST")}},

	// pen
	"pen_clear":                 {ast.PenClear, nil},
	"pen_stamp":                 {ast.PenStamp, nil},
	"pen_penDown":               {ast.PenDown, nil},
	"pen_penUp":                 {ast.PenUp, nil},
	"pen_setPenColorToColor":    {ast.PenSetColorTo, []slot{in("COLOR")}},
	"pen_changePenColorParamBy": {ast.PenChangeParamBy, []slot{in("COLOR_PARAM"), in("VALUE")}},
	"pen_setPenColorParamTo":    {ast.PenSetParamTo, []slot{in("COLOR_PARAM"), in("VALUE")}},
	"pen_changePenSizeBy":       {ast.PenChangeSizeBy, []slot{in("SIZE")}},
	"pen_setPenSizeTo":          {ast.PenSetSizeTo, []slot{in("SIZE")}},
}

// menus are shadow blocks whose only content is a field; they translate to a
// string literal of the field's value.
var menus = map[string]string{
	"motion_goto_menu":             "TO",
	"motion_glideto_menu":          "TO",
	"motion_pointtowards_menu":     "TOWARDS",
	"looks_costume":                "COSTUME",
	"looks_backdrops":              "BACKDROP",
	"sound_sounds_menu":            "SOUND_MENU",
	"control_create_clone_of_menu": "CLONE_OPTION",
	"sensing_touchingobjectmenu":   "TOUCHINGOBJECTMENU",
	"sensing_distancetomenu":       "DISTANCETOMENU",
	"sensing_keyoptions":           "KEY_OPTION",
	"sensing_of_object_menu":       "OBJECT",
	"pen_menu_colorParam":          "colorParam",
}

// Opcodes with dedicated translations.
const (
	opcodeWhenFlagClicked   = "event_whenflagclicked"
	opcodeWhenKeyPressed    = "event_whenkeypressed"
	opcodeWhenBroadcast     = "event_whenbroadcastreceived"
	opcodeWhenSpriteClicked = "event_whenthisspriteclicked"
	opcodeWhenStageClicked  = "event_whenstageclicked"
	opcodeWhenCloneStarts   = "control_start_as_clone"
	opcodeBroadcastMenu     = "event_broadcast_menu"
	opcodeProcedureCall     = "procedures_call"
	fieldKeyOption          = "KEY_OPTION"
	fieldBroadcastOption    = "BROADCAST_OPTION"
	fieldVariable           = "VARIABLE"
	fieldList               = "LIST"
)

// Supported reports whether opcode has a translation other than the
// placeholder fallback.
func Supported(opcode string) bool {
	if _, ok := opcodes[opcode]; ok {
		return true
	}
	if _, ok := menus[opcode]; ok {
		return true
	}
	if _, ok := triggers[opcode]; ok {
		return true
	}
	switch opcode {
	case "data_variable", "data_listcontents", opcodeBroadcastMenu, opcodeProcedureCall:
		return true
	}
	return false
}
