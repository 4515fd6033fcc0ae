package dsn

import (
	"fmt"
	"sort"
)

// Design is the typed model extracted from a DSN file.
// It is built once by Build and never mutated afterwards.
type Design struct {
	Name       string // Board name following the pcb keyword (may be empty)
	Resolution Resolution
	Structure  Structure
	Placement  Placement
	Library    Library
	Network    Network
}

// Resolution is the unit declaration, e.g. (resolution um 10)
type Resolution struct {
	Unit  string
	Value float64
}

// Layer represents a routing layer
type Layer struct {
	Name string // e.g. "F.Cu"
}

// Structure holds the board layers and outline
type Structure struct {
	Layers   []Layer
	Boundary []Point // Outline vertices in file order
}

// Instance is one placed copy of a component image
type Instance struct {
	Reference string  // Reference designator, e.g. "R1"
	Position  Point   // Absolute position
	Side      string  // front/back, informational only
	Rotation  float64 // Degrees, counter-clockwise
}

// Component groups the instances placed from one image
type Component struct {
	Name      string // Image name
	Instances []Instance
}

// Placement lists components in file order
type Placement struct {
	Components []Component
}

// Pin is a pad location inside an image
type Pin struct {
	PadstackName string
	Number       int
	Position     Point   // Relative to the image origin
	Rotation     float64 // Optional (rotate deg), 0 if absent
}

// Image is a footprint definition, with pins keyed by pin number
type Image struct {
	Name string
	Pins map[int]Pin
}

// PinNumbers returns the image's pin numbers in ascending order
func (img Image) PinNumbers() []int {
	numbers := make([]int, 0, len(img.Pins))
	for n := range img.Pins {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}

// Shape is one of Circle, Rect or Polygon.
type Shape interface {
	// Kind returns the DSN keyword of the shape
	Kind() string
	// ShapeLayer returns the layer the shape was declared on
	ShapeLayer() string
}

// Circle is (circle LAYER diameter)
type Circle struct {
	Layer    string
	Diameter float64
}

// Rect is (rect LAYER x_min y_min x_max y_max)
type Rect struct {
	Layer                  string
	XMin, YMin, XMax, YMax float64
}

// Polygon is (polygon LAYER aperture_width x y x y ...)
type Polygon struct {
	Layer         string
	ApertureWidth float64
	Vertices      []Point
}

func (Circle) Kind() string  { return "circle" }
func (Rect) Kind() string    { return "rect" }
func (Polygon) Kind() string { return "polygon" }

func (c Circle) ShapeLayer() string  { return c.Layer }
func (r Rect) ShapeLayer() string    { return r.Layer }
func (p Polygon) ShapeLayer() string { return p.Layer }

// Width returns x_max - x_min
func (r Rect) Width() float64 { return r.XMax - r.XMin }

// Height returns y_max - y_min
func (r Rect) Height() float64 { return r.YMax - r.YMin }

// PadStack is a named pad geometry. Only the first declared shape is kept.
type PadStack struct {
	Name        string
	Shape       Shape
	ThroughHole bool // More than one shape was declared
}

// Library holds images and padstacks keyed by name
type Library struct {
	Images    map[string]Image
	PadStacks map[string]PadStack
}

// PinRef is one REFERENCE-PINNUMBER member of a net
type PinRef struct {
	Component string
	Pin       int
}

// String returns the "REF-PIN" form used as the pad key
func (r PinRef) String() string {
	return fmt.Sprintf("%s-%d", r.Component, r.Pin)
}

// Net represents an electrical net
type Net struct {
	Name string
	Pins []PinRef
}

// NetClass is a named group of nets sharing routing defaults
type NetClass struct {
	Name      string
	NetNames  []string
	ViaName   string  // Padstack used for vias
	Width     float64 // Default trace width
	Clearance float64 // Default clearance
}

// Network lists nets in file order and netclasses keyed by name.
// ClassOrder keeps declaration order so lookups are deterministic.
type Network struct {
	Nets       []Net
	Classes    map[string]NetClass
	ClassOrder []string
}

// ClassOf returns the first declared netclass listing netName
func (n Network) ClassOf(netName string) (NetClass, bool) {
	for _, name := range n.ClassOrder {
		class := n.Classes[name]
		for _, member := range class.NetNames {
			if member == netName {
				return class, true
			}
		}
	}
	return NetClass{}, false
}
