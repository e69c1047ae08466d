// Package sb3 is the raw model of a Scratch 3 project.json.
//
// The types mirror the on-disk shapes, including the untagged tuples used for
// variables, lists, fields and inputs. Every untagged type decodes by trying an
// explicit, ordered list of candidate shapes and accepting the first match, so
// an ambiguous value can never silently bind to an unintended shape.
package sb3

// Project is the root object of project.json.
type Project struct {
	Targets    []Target `json:"targets"`
	Extensions []string `json:"extensions"`
	Meta       Meta     `json:"meta"`
}

// Meta describes the editor that wrote the file. It is diagnostic only.
type Meta struct {
	Semver string `json:"semver"`
	VM     string `json:"vm"`
	Agent  string `json:"agent"`
}

// Target is a sprite or the stage.
// Variables, lists and broadcasts are keyed by their opaque id.
type Target struct {
	IsStage        bool                `json:"isStage"`
	Name           string              `json:"name"`
	Variables      map[string]Variable `json:"variables"`
	Lists          map[string]List     `json:"lists"`
	Broadcasts     map[string]string   `json:"broadcasts"`
	Blocks         map[string]Block    `json:"blocks"`
	Costumes       []Costume           `json:"costumes"`
	CurrentCostume int                 `json:"currentCostume"`
	Sounds         []Sound             `json:"sounds"`
	Volume         float64             `json:"volume"`
	LayerOrder     int                 `json:"layerOrder"`

	// Sprite transform.
	Visible       bool          `json:"visible"`
	X             float64       `json:"x"`
	Y             float64       `json:"y"`
	Size          float64       `json:"size"`
	Direction     float64       `json:"direction"`
	Draggable     bool          `json:"draggable"`
	RotationStyle RotationStyle `json:"rotationStyle"`

	// Stage only.
	Tempo                int     `json:"tempo"`
	VideoTransparency    float64 `json:"videoTransparency"`
	VideoState           string  `json:"videoState"`
	TextToSpeechLanguage *string `json:"textToSpeechLanguage"`
}

// Costume is an image asset record. Only png and svg are accepted.
type Costume struct {
	Name             string      `json:"name"`
	DataFormat       ImageFormat `json:"dataFormat"`
	AssetID          string      `json:"assetId"`
	MD5Ext           string      `json:"md5ext"`
	BitmapResolution float64     `json:"bitmapResolution"`
	RotationCenterX  float64     `json:"rotationCenterX"`
	RotationCenterY  float64     `json:"rotationCenterY"`
}

// Sound is an audio asset record, carried opaquely.
type Sound struct {
	Name        string  `json:"name"`
	AssetID     string  `json:"assetId"`
	MD5Ext      string  `json:"md5ext"`
	DataFormat  string  `json:"dataFormat"`
	Rate        float64 `json:"rate"`
	SampleCount int     `json:"sampleCount"`
}

// Mutation carries the extra state of procedure prototypes and calls.
// argumentids, argumentnames and argumentdefaults are JSON arrays encoded as
// strings, exactly as the editor writes them.
type Mutation struct {
	TagName          string `json:"tagName"`
	ProcCode         string `json:"proccode"`
	ArgumentIDs      string `json:"argumentids"`
	ArgumentNames    string `json:"argumentnames"`
	ArgumentDefaults string `json:"argumentdefaults"`
}
