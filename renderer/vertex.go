package renderer

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/vkngwrapper/core/v3/core1_0"
)

type Vertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
}

// Positions are in clip space, the vertex shader passes them through
var triangleVertices = []Vertex{
	{Position: mgl32.Vec3{0.0, -0.5, 0.0}, Color: mgl32.Vec3{1.0, 0.0, 0.0}},
	{Position: mgl32.Vec3{0.5, 0.5, 0.0}, Color: mgl32.Vec3{0.0, 1.0, 0.0}},
	{Position: mgl32.Vec3{-0.5, 0.5, 0.0}, Color: mgl32.Vec3{0.0, 0.0, 1.0}},
}

// triangleVertexCount must match len(triangleVertices)
const triangleVertexCount = 3

func getVertexBindingDescription() []core1_0.VertexInputBindingDescription {
	v := Vertex{}
	return []core1_0.VertexInputBindingDescription{
		{
			Binding:   0,
			Stride:    int(unsafe.Sizeof(v)),
			InputRate: core1_0.VertexInputRateVertex,
		},
	}
}

func getVertexAttributeDescriptions() []core1_0.VertexInputAttributeDescription {
	v := Vertex{}
	return []core1_0.VertexInputAttributeDescription{
		{
			Binding:  0,
			Location: 0,
			Format:   core1_0.FormatR32G32B32SignedFloat,
			Offset:   int(unsafe.Offsetof(v.Position)),
		},
		{
			Binding:  0,
			Location: 1,
			Format:   core1_0.FormatR32G32B32SignedFloat,
			Offset:   int(unsafe.Offsetof(v.Color)),
		},
	}
}
