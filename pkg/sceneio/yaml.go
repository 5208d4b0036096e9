// Package sceneio loads declarative YAML scene descriptions, the
// counterpart to pkg/scene/builtins.go's compiled-in constructors.
package sceneio

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/K2017/sdfmarch/pkg/camera"
	"github.com/K2017/sdfmarch/pkg/core"
	"github.com/K2017/sdfmarch/pkg/light"
	"github.com/K2017/sdfmarch/pkg/material"
	"github.com/K2017/sdfmarch/pkg/scene"
	"github.com/K2017/sdfmarch/pkg/sdf"
)

// vec3 is a [3]float64 in YAML, e.g. `position: [0, -1, 0.5]`.
type vec3 [3]float64

func (v vec3) toCore() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// yamlMaterial mirrors material.Material with optional (nil when unset)
// fields so a scene author only writes what differs from material.Default().
type yamlMaterial struct {
	Albedo        *vec3    `yaml:"albedo,omitempty"`
	Kd            *float64 `yaml:"kd,omitempty"`
	Ka            *float64 `yaml:"ka,omitempty"`
	Ks            *float64 `yaml:"ks,omitempty"`
	P             *float64 `yaml:"p,omitempty"`
	IOR           *float64 `yaml:"ior,omitempty"`
	Transmittance *float64 `yaml:"transmittance,omitempty"`
	Absorption    *float64 `yaml:"absorption,omitempty"`
}

func (ym *yamlMaterial) toMaterial() material.Material {
	m := material.Default()
	if ym == nil {
		return m
	}
	if ym.Albedo != nil {
		m.Albedo = ym.Albedo.toCore()
	}
	if ym.Kd != nil {
		m.Kd = *ym.Kd
	}
	if ym.Ka != nil {
		m.Ka = *ym.Ka
	}
	if ym.Ks != nil {
		m.Ks = *ym.Ks
	}
	if ym.P != nil {
		m.P = *ym.P
	}
	if ym.IOR != nil {
		m.IOR = *ym.IOR
	}
	if ym.Transmittance != nil {
		m.Transmittance = *ym.Transmittance
	}
	if ym.Absorption != nil {
		m.Absorption = *ym.Absorption
	}
	return m
}

// yamlNode describes one node of the CSG tree. Only the fields relevant to
// Type are read; others are ignored. Binary/unary operators reference their
// operands by the ID of another node, which may appear anywhere in the list.
type yamlNode struct {
	ID   string `yaml:"id"`
	Type string `yaml:"type"`

	Material *yamlMaterial `yaml:"material,omitempty"`

	// primitives
	Radius      float64  `yaml:"radius,omitempty"`
	RMajor      float64  `yaml:"rMajor,omitempty"`
	RMinor      float64  `yaml:"rMinor,omitempty"`
	Normal      *vec3    `yaml:"normal,omitempty"`
	H           float64  `yaml:"h,omitempty"`
	HalfExtents *vec3    `yaml:"halfExtents,omitempty"`
	V0          *vec3    `yaml:"v0,omitempty"`
	V1          *vec3    `yaml:"v1,omitempty"`
	V2          *vec3    `yaml:"v2,omitempty"`

	// binary operators
	A      string `yaml:"a,omitempty"`
	B      string `yaml:"b,omitempty"`
	Smooth bool   `yaml:"smooth,omitempty"`
	K      float64 `yaml:"k,omitempty"`

	// unary operators
	Child     string  `yaml:"child,omitempty"`
	Translate *vec3   `yaml:"translate,omitempty"`
	Rotate    *vec3   `yaml:"rotate,omitempty"`
	Scale     *vec3   `yaml:"scale,omitempty"`
	Thickness float64 `yaml:"thickness,omitempty"`
	Amount    *vec3   `yaml:"amount,omitempty"`
}

type yamlLight struct {
	Position  vec3    `yaml:"position"`
	Color     vec3    `yaml:"color"`
	Intensity float64 `yaml:"intensity"`
}

type yamlCamera struct {
	Position    vec3    `yaml:"position"`
	Up          vec3    `yaml:"up"`
	FocalLength float64 `yaml:"focalLength"`
}

type yamlProperties struct {
	BackgroundColor  *vec3    `yaml:"backgroundColor,omitempty"`
	Illumination     bool     `yaml:"illumination,omitempty"`
	Fresnel          bool     `yaml:"fresnel,omitempty"`
	Shadowing        bool     `yaml:"shadowing,omitempty"`
	Absorption       bool     `yaml:"absorption,omitempty"`
	ShadowIntensity  *float64 `yaml:"shadowIntensity,omitempty"`
	MaxRaymarchSteps *int     `yaml:"maxRaymarchSteps,omitempty"`
	MaxRaymarchDist  *float64 `yaml:"maxRaymarchDist,omitempty"`
	MaxDepth         *int     `yaml:"maxDepth,omitempty"`
}

type yamlDebug struct {
	Normals bool `yaml:"normals,omitempty"`
	Depth   bool `yaml:"depth,omitempty"`
}

// Document is the root of a YAML scene description.
type Document struct {
	Camera     yamlCamera     `yaml:"camera"`
	Properties yamlProperties `yaml:"properties,omitempty"`
	Debug      yamlDebug      `yaml:"debug,omitempty"`
	Lights     []yamlLight    `yaml:"lights,omitempty"`
	Nodes      []yamlNode     `yaml:"nodes"`
	Roots      []string       `yaml:"roots"`
}

// Load reads and builds a *scene.Scene from a YAML scene description file.
func Load(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sceneio: read %s: %w", path, err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("sceneio: parse %s: %w", path, err)
	}

	return Build(&doc)
}

// Build converts a parsed Document into a *scene.Scene.
func Build(doc *Document) (*scene.Scene, error) {
	s := scene.New()

	cam := camera.New(doc.Camera.Position.toCore(), doc.Camera.Up.toCore(), doc.Camera.FocalLength)
	s.SetActiveCamera(cam)

	props := scene.DefaultSceneProperties()
	if doc.Properties.BackgroundColor != nil {
		props.BackgroundColor = doc.Properties.BackgroundColor.toCore()
	}
	props.Illumination = doc.Properties.Illumination
	props.Fresnel = doc.Properties.Fresnel
	props.Shadowing = doc.Properties.Shadowing
	props.Absorption = doc.Properties.Absorption
	if doc.Properties.ShadowIntensity != nil {
		props.ShadowIntensity = *doc.Properties.ShadowIntensity
	}
	if doc.Properties.MaxRaymarchSteps != nil {
		props.MaxRaymarchSteps = *doc.Properties.MaxRaymarchSteps
	}
	if doc.Properties.MaxRaymarchDist != nil {
		props.MaxRaymarchDist = *doc.Properties.MaxRaymarchDist
	}
	if doc.Properties.MaxDepth != nil {
		props.MaxDepth = *doc.Properties.MaxDepth
	}
	s.SetProperties(props)
	s.SetDebugProperties(scene.DebugProperties{Normals: doc.Debug.Normals, Depth: doc.Debug.Depth})

	for _, l := range doc.Lights {
		s.AddLight(light.New(l.Position.toCore(), l.Color.toCore(), l.Intensity))
	}

	b := &builder{byID: make(map[string]sdf.Node), defs: make(map[string]*yamlNode)}
	for i := range doc.Nodes {
		n := &doc.Nodes[i]
		if n.ID == "" {
			return nil, fmt.Errorf("sceneio: node %d has no id", i)
		}
		if _, exists := b.defs[n.ID]; exists {
			return nil, fmt.Errorf("sceneio: duplicate node id %q", n.ID)
		}
		b.defs[n.ID] = n
	}

	for _, rootID := range doc.Roots {
		node, err := b.resolve(rootID, nil)
		if err != nil {
			return nil, err
		}
		s.AddRoot(node)
	}

	return s, nil
}

// builder resolves yamlNode references into sdf.Node values, memoizing by ID
// so a node referenced by more than one parent is only built once, and
// detecting reference cycles via the in-progress stack.
type builder struct {
	byID map[string]sdf.Node
	defs map[string]*yamlNode
}

func (b *builder) resolve(id string, stack []string) (sdf.Node, error) {
	if node, ok := b.byID[id]; ok {
		return node, nil
	}
	for _, seen := range stack {
		if seen == id {
			return nil, fmt.Errorf("sceneio: cycle detected resolving node %q", id)
		}
	}

	def, ok := b.defs[id]
	if !ok {
		return nil, fmt.Errorf("sceneio: undefined node id %q", id)
	}

	node, err := b.build(def, append(stack, id))
	if err != nil {
		return nil, err
	}
	b.byID[id] = node
	return node, nil
}

func (b *builder) build(n *yamlNode, stack []string) (sdf.Node, error) {
	mat := n.Material.toMaterial()

	switch n.Type {
	case "sphere":
		return sdf.NewSphere(n.Radius, mat), nil
	case "plane":
		normal := core.NewVec3(0, 1, 0)
		if n.Normal != nil {
			normal = n.Normal.toCore()
		}
		return sdf.NewPlane(normal, n.H, mat), nil
	case "torus":
		return sdf.NewTorus(n.RMajor, n.RMinor, mat), nil
	case "box":
		he := core.NewVec3(0.5, 0.5, 0.5)
		if n.HalfExtents != nil {
			he = n.HalfExtents.toCore()
		}
		return sdf.NewBox(he, mat), nil
	case "triangle":
		if n.V0 == nil || n.V1 == nil || n.V2 == nil {
			return nil, fmt.Errorf("sceneio: node %q: triangle requires v0, v1, v2", n.ID)
		}
		return sdf.NewTriangle(n.V0.toCore(), n.V1.toCore(), n.V2.toCore(), mat), nil

	case "union", "difference", "intersection":
		a, err := b.resolve(n.A, stack)
		if err != nil {
			return nil, err
		}
		bb, err := b.resolve(n.B, stack)
		if err != nil {
			return nil, err
		}
		switch n.Type {
		case "union":
			return sdf.NewUnion(a, bb, n.Smooth, n.K), nil
		case "difference":
			return sdf.NewDifference(a, bb, n.Smooth, n.K), nil
		default:
			return sdf.NewIntersection(a, bb, n.Smooth, n.K), nil
		}

	case "transform":
		child, err := b.resolve(n.Child, stack)
		if err != nil {
			return nil, err
		}
		translate, rotate, scale := core.Vec3{}, core.Vec3{}, core.NewVec3(1, 1, 1)
		if n.Translate != nil {
			translate = n.Translate.toCore()
		}
		if n.Rotate != nil {
			rotate = n.Rotate.toCore()
		}
		if n.Scale != nil {
			scale = n.Scale.toCore()
		}
		return sdf.NewTransform(child, translate, rotate, scale), nil
	case "round":
		child, err := b.resolve(n.Child, stack)
		if err != nil {
			return nil, err
		}
		return sdf.NewRound(child, n.Radius), nil
	case "onion":
		child, err := b.resolve(n.Child, stack)
		if err != nil {
			return nil, err
		}
		return sdf.NewOnion(child, n.Thickness), nil
	case "elongate":
		child, err := b.resolve(n.Child, stack)
		if err != nil {
			return nil, err
		}
		amount := core.Vec3{}
		if n.Amount != nil {
			amount = n.Amount.toCore()
		}
		return sdf.NewElongate(child, amount), nil

	default:
		return nil, fmt.Errorf("sceneio: node %q: unknown type %q", n.ID, n.Type)
	}
}
