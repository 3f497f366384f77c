// Package descriptor holds the compiled, language-agnostic representation of
// an OpenAPI document: structural types for every reachable schema and one
// operation descriptor per path/verb. Descriptors are built once per
// compilation and never mutated afterwards.
package descriptor

// Kind identifies the shape of a Type.
type Kind string

const (
	KindUnknown      Kind = "unknown"
	KindNull         Kind = "null"
	KindBoolean      Kind = "boolean"
	KindNumber       Kind = "number"
	KindString       Kind = "string"
	KindDate         Kind = "date"
	KindLiteral      Kind = "literal"
	KindArray        Kind = "array"
	KindObject       Kind = "object"
	KindRecord       Kind = "record"
	KindUnion        Kind = "union"
	KindIntersection Kind = "intersection"
	KindRef          Kind = "ref"
)

// Type is the structural shape compiled from one schema node. A Type is
// either inline (owned by its single use site) or named, in which case it
// lives in the API model set and is pointed at through KindRef nodes.
type Type struct {
	Kind Kind

	// Ref is the model name, for KindRef.
	Ref string

	// Elem is the element type of an array, or the value type of a record.
	Elem *Type

	// Fields are the declared properties of an object.
	Fields []Field

	// Members are the branches of a union or intersection.
	Members []*Type

	// Literal is the exact value of a literal type (enum member).
	Literal any
}

// Field is one declared object property.
type Field struct {
	Name     string
	Type     *Type
	Optional bool
}

// Location is where a parameter travels on the wire.
type Location string

const (
	InPath   Location = "path"
	InQuery  Location = "query"
	InHeader Location = "header"
	InCookie Location = "cookie"
)

// Style is an OpenAPI parameter serialization style.
type Style string

const (
	StyleForm           Style = "form"
	StyleSpaceDelimited Style = "spaceDelimited"
	StylePipeDelimited  Style = "pipeDelimited"
	StyleDeepObject     Style = "deepObject"
)

// Parameter describes one operation parameter.
type Parameter struct {
	// Name is the raw wire name, Arg the derived argument identifier.
	Name     string
	Arg      string
	In       Location
	Required bool
	Style    Style
	Explode  bool
	Type     *Type
}

// BodyEncoding classifies how a request body goes on the wire.
type BodyEncoding string

const (
	EncodingJSON      BodyEncoding = "json"
	EncodingForm      BodyEncoding = "form"
	EncodingMultipart BodyEncoding = "multipart"
)

// Body describes an operation request body.
type Body struct {
	Encoding BodyEncoding
	Required bool
	Type     *Type
}

// Segment is one span of a URL template: either a literal or a parameter
// reference, never both.
type Segment struct {
	Literal string
	Param   string
}

// Operation is the compiled descriptor for one path/verb.
type Operation struct {
	Name       string
	Tag        string
	Method     string
	Path       string
	Template   []Segment
	Required   []Parameter
	Optional   []Parameter
	Body       *Body
	Success    *Type
	Error      *Type
	Deprecated bool
}

// Service groups the operations sharing one tag.
type Service struct {
	Tag        string
	Operations []Operation
}

// Model is a named type alias shared across the compiled API.
type Model struct {
	Name string
	Type *Type
}

// API is the complete compiled artifact handed to emitters and usable
// directly by the runtime client.
type API struct {
	Services []Service
	Models   []Model

	// Optimistic marks that callers asked for the convenience
	// success-wrapper instead of the raw result envelope.
	Optimistic bool
}

// ModelSet returns the name lookup for the API's named types.
func (a *API) ModelSet() map[string]*Type {
	set := make(map[string]*Type, len(a.Models))
	for _, m := range a.Models {
		set[m.Name] = m.Type
	}
	return set
}

// Nullable wraps t in a union with null, unless t already is null.
func Nullable(t *Type) *Type {
	if t == nil || t.Kind == KindNull {
		return &Type{Kind: KindNull}
	}
	return &Type{Kind: KindUnion, Members: []*Type{t, {Kind: KindNull}}}
}
