package alto

// Document represents one parsed ALTO file
type Document struct {
	SourceImage     string            // Image filename from sourceImageInformation
	MeasurementUnit string            // Coordinate unit (usually "pixel")
	Tags            map[string]string // Tag ID → semantic label (from OtherTag elements)
	Pages           []Page            // Pages in the document (normally one per file)
}

// Page is one physical page of recognized content
// Corresponds to the ALTO Page element
type Page struct {
	ID     string      // Unique identifier
	Width  int         // Page width in measurement units
	Height int         // Page height in measurement units
	Blocks []TextBlock // Content regions on the page
}

// TextBlock represents a content region (zone) on a page
// Corresponds to the ALTO TextBlock element
type TextBlock struct {
	ID       string     // Unique identifier
	TagRefs  string     // Whitespace-separated tag references (TAGREFS attribute)
	Geometry *Geometry  // Region coordinates, nil when incomplete
	Polygon  string     // Shape/Polygon POINTS for precise boundaries
	Lines    []TextLine // Text lines in this region
}

// TextLine represents a recognized line of text
// Corresponds to the ALTO TextLine element
type TextLine struct {
	ID       string    // Unique identifier
	TagRefs  string    // Whitespace-separated tag references (TAGREFS attribute)
	Baseline string    // Baseline point list
	Geometry *Geometry // Line coordinates, nil when incomplete
	Polygon  string    // Shape/Polygon POINTS for precise boundaries
	Strings  []String  // Words or text runs in this line
}

// String is a recognized word or text run
// Corresponds to the ALTO String element
type String struct {
	ID       string    // Unique identifier
	Content  string    // The actual text content (CONTENT attribute)
	Geometry *Geometry // Word coordinates, nil when incomplete
	Polygon  string    // Shape/Polygon POINTS for precise boundaries
}

// Geometry is the pixel-space position of a layout element
// Stores the ALTO HPOS/VPOS/WIDTH/HEIGHT attribute values
type Geometry struct {
	HPos   float64 // Horizontal position of the upper-left corner
	VPos   float64 // Vertical position of the upper-left corner
	Width  float64 // Element width
	Height float64 // Element height
}
