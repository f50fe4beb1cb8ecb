package renderer

import (
	"encoding/binary"
	"testing"

	"github.com/vkngwrapper/core/v3/core1_0"
)

func TestVertexLayout(t *testing.T) {
	bindings := getVertexBindingDescription()
	if len(bindings) != 1 {
		t.Fatalf("expected one binding, got %d", len(bindings))
	}
	if bindings[0].Binding != 0 || bindings[0].Stride != 24 {
		t.Errorf("unexpected binding %+v", bindings[0])
	}
	if bindings[0].InputRate != core1_0.VertexInputRateVertex {
		t.Errorf("expected per-vertex rate, got %v", bindings[0].InputRate)
	}

	attributes := getVertexAttributeDescriptions()
	if len(attributes) != 2 {
		t.Fatalf("expected two attributes, got %d", len(attributes))
	}
	for i, attribute := range attributes {
		if attribute.Location != i || attribute.Binding != 0 {
			t.Errorf("attribute %d: unexpected location/binding %+v", i, attribute)
		}
		if attribute.Format != core1_0.FormatR32G32B32SignedFloat {
			t.Errorf("attribute %d: expected R32G32B32 float, got %v", i, attribute.Format)
		}
	}
	if attributes[0].Offset != 0 || attributes[1].Offset != 12 {
		t.Errorf("unexpected offsets %d, %d", attributes[0].Offset, attributes[1].Offset)
	}
}

func TestTriangleVertices(t *testing.T) {
	if len(triangleVertices) != triangleVertexCount {
		t.Fatalf("draw count %d does not match %d vertices", triangleVertexCount, len(triangleVertices))
	}

	if size := binary.Size(triangleVertices); size != triangleVertexCount*24 {
		t.Errorf("expected packed vertex data of %d bytes, got %d", triangleVertexCount*24, size)
	}
}
