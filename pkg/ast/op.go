package ast

// Op identifies an Operation. The set grows as more opcodes are supported;
// the resolver's opcode table is the only place that maps wire opcodes to Ops.
type Op string

// Motion. Args are listed in Operation.Args order.
const (
	MotionMove             Op = "MotionMove"             // [steps]
	MotionTurnRight        Op = "MotionTurnRight"        // [degrees]
	MotionTurnLeft         Op = "MotionTurnLeft"         // [degrees]
	MotionGoTo             Op = "MotionGoTo"             // [target]
	MotionGoToXY           Op = "MotionGoToXY"           // [x, y]
	MotionGlideTo          Op = "MotionGlideTo"          // [secs, target]
	MotionGlideToXY        Op = "MotionGlideToXY"        // [secs, x, y]
	MotionPointInDirection Op = "MotionPointInDirection" // [direction]
	MotionPointTowards     Op = "MotionPointTowards"     // [target]
	MotionChangeXBy        Op = "MotionChangeXBy"        // [dx]
	MotionSetX             Op = "MotionSetX"             // [x]
	MotionChangeYBy        Op = "MotionChangeYBy"        // [dy]
	MotionSetY             Op = "MotionSetY"             // [y]
	MotionIfOnEdgeBounce   Op = "MotionIfOnEdgeBounce"   // []
	MotionSetRotationStyle Op = "MotionSetRotationStyle" // [style]
	MotionXPosition        Op = "MotionXPosition"        // []
	MotionYPosition        Op = "MotionYPosition"        // []
	MotionDirection        Op = "MotionDirection"        // []
)

// Looks.
const (
	LooksSayForSecs          Op = "LooksSayForSecs"          // [message, secs]
	LooksSay                 Op = "LooksSay"                 // [message]
	LooksThinkForSecs        Op = "LooksThinkForSecs"        // [message, secs]
	LooksThink               Op = "LooksThink"               // [message]
	LooksSwitchCostumeTo     Op = "LooksSwitchCostumeTo"     // [costume]
	LooksNextCostume         Op = "LooksNextCostume"         // []
	LooksSwitchBackdropTo    Op = "LooksSwitchBackdropTo"    // [backdrop]
	LooksNextBackdrop        Op = "LooksNextBackdrop"        // []
	LooksChangeSizeBy        Op = "LooksChangeSizeBy"        // [change]
	LooksSetSizeTo           Op = "LooksSetSizeTo"           // [size]
	LooksChangeEffectBy      Op = "LooksChangeEffectBy"      // [effect, change]
	LooksSetEffectTo         Op = "LooksSetEffectTo"         // [effect, value]
	LooksClearGraphicEffects Op = "LooksClearGraphicEffects" // []
	LooksShow                Op = "LooksShow"                // []
	LooksHide                Op = "LooksHide"                // []
	LooksGoToFrontBack       Op = "LooksGoToFrontBack"       // [frontOrBack]
	LooksGoLayers            Op = "LooksGoLayers"            // [forwardOrBackward, num]
	LooksCostumeNumberName   Op = "LooksCostumeNumberName"   // [numberOrName]
	LooksBackdropNumberName  Op = "LooksBackdropNumberName"  // [numberOrName]
	LooksSize                Op = "LooksSize"                // []
)

// Sound.
const (
	SoundPlayUntilDone  Op = "SoundPlayUntilDone"  // [sound]
	SoundPlay           Op = "SoundPlay"           // [sound]
	SoundStopAll        Op = "SoundStopAll"        // []
	SoundChangeVolumeBy Op = "SoundChangeVolumeBy" // [volume]
	SoundSetVolumeTo    Op = "SoundSetVolumeTo"    // [volume]
	SoundVolume         Op = "SoundVolume"         // []
)

// Events.
const (
	EventBroadcast        Op = "EventBroadcast"        // [broadcast]
	EventBroadcastAndWait Op = "EventBroadcastAndWait" // [broadcast]
)

// Control. Substack operands are *Stack.
const (
	ControlWait            Op = "ControlWait"            // [duration]
	ControlRepeat          Op = "ControlRepeat"          // [times, body]
	ControlForever         Op = "ControlForever"         // [body]
	ControlIf              Op = "ControlIf"              // [condition, then]
	ControlIfElse          Op = "ControlIfElse"          // [condition, then, else]
	ControlWaitUntil       Op = "ControlWaitUntil"       // [condition]
	ControlRepeatUntil     Op = "ControlRepeatUntil"     // [condition, body]
	ControlStop            Op = "ControlStop"            // [option]
	ControlCreateCloneOf   Op = "ControlCreateCloneOf"   // [target]
	ControlDeleteThisClone Op = "ControlDeleteThisClone" // []
)

// Sensing.
const (
	SensingTouchingObject Op = "SensingTouchingObject" // [target]
	SensingTouchingColor  Op = "SensingTouchingColor"  // [color]
	SensingDistanceTo     Op = "SensingDistanceTo"     // [target]
	SensingAskAndWait     Op = "SensingAskAndWait"     // [question]
	SensingAnswer         Op = "SensingAnswer"         // []
	SensingKeyPressed     Op = "SensingKeyPressed"     // [key]
	SensingMouseDown      Op = "SensingMouseDown"      // []
	SensingMouseX         Op = "SensingMouseX"         // []
	SensingMouseY         Op = "SensingMouseY"         // []
	SensingLoudness       Op = "SensingLoudness"       // []
	SensingTimer          Op = "SensingTimer"          // []
	SensingResetTimer     Op = "SensingResetTimer"     // []
	SensingCurrent        Op = "SensingCurrent"        // [unit]
	SensingDaysSince2000  Op = "SensingDaysSince2000"  // []
	SensingUsername       Op = "SensingUsername"       // []
)

// Operators.
const (
	OperatorAdd         Op = "OperatorAdd"         // [a, b]
	OperatorSubtract    Op = "OperatorSubtract"    // [a, b]
	OperatorMultiply    Op = "OperatorMultiply"    // [a, b]
	OperatorDivide      Op = "OperatorDivide"      // [a, b]
	OperatorMod         Op = "OperatorMod"         // [a, b]
	OperatorRandom      Op = "OperatorRandom"      // [from, to]
	OperatorGreaterThan Op = "OperatorGreaterThan" // [a, b]
	OperatorLessThan    Op = "OperatorLessThan"    // [a, b]
	OperatorEquals      Op = "OperatorEquals"      // [a, b]
	OperatorAnd         Op = "OperatorAnd"         // [a, b]
	OperatorOr          Op = "OperatorOr"          // [a, b]
	OperatorNot         Op = "OperatorNot"         // [a]
	OperatorJoin        Op = "OperatorJoin"        // [a, b]
	OperatorLetterOf    Op = "OperatorLetterOf"    // [index, text]
	OperatorLength      Op = "OperatorLength"      // [text]
	OperatorContains    Op = "OperatorContains"    // [text, part]
	OperatorRound       Op = "OperatorRound"       // [n]
	OperatorMathOp      Op = "OperatorMathOp"      // [function, n]
)

// Data. Variable and list operands are *VariableRef and *ListRef.
const (
	DataSetVariableTo     Op = "DataSetVariableTo"     // [variable, value]
	DataChangeVariableBy  Op = "DataChangeVariableBy"  // [variable, value]
	DataShowVariable      Op = "DataShowVariable"      // [variable]
	DataHideVariable      Op = "DataHideVariable"      // [variable]
	DataAddToList         Op = "DataAddToList"         // [list, item]
	DataDeleteOfList      Op = "DataDeleteOfList"      // [list, index]
	DataDeleteAllOfList   Op = "DataDeleteAllOfList"   // [list]
	DataInsertAtList      Op = "DataInsertAtList"      // [list, index, item]
	DataReplaceItemOfList Op = "DataReplaceItemOfList" // [list, index, item]
	DataItemOfList        Op = "DataItemOfList"        // [list, index]
	DataItemNumOfList     Op = "DataItemNumOfList"     // [list, item]
	DataLengthOfList      Op = "DataLengthOfList"      // [list]
	DataListContainsItem  Op = "DataListContainsItem"  // [list, item]
	DataShowList          Op = "DataShowList"          // [list]
	DataHideList          Op = "DataHideList"          // [list]
)

// Pen extension.
const (
	PenClear         Op = "PenClear"         // []
	PenStamp         Op = "PenStamp"         // []
	PenDown          Op = "PenDown"          // []
	PenUp            Op = "PenUp"            // []
	PenSetColorTo    Op = "PenSetColorTo"    // [color]
	PenChangeParamBy Op = "PenChangeParamBy" // [param, value]
	PenSetParamTo    Op = "PenSetParamTo"    // [param, value]
	PenChangeSizeBy  Op = "PenChangeSizeBy"  // [size]
	PenSetSizeTo     Op = "PenSetSizeTo"     // [size]
)

// NewOp builds an Operation.
func NewOp(op Op, args ...Block) *Operation {
	return &Operation{Op: op, Args: args}
}
