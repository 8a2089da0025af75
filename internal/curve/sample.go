package curve

import "github.com/keygrid/keygrid/sheet-go/internal/typeid"

// NewSampleModel builds the model served by default: a reader clip, a group
// of two animated transform nodes and a standalone blur node. Handy during
// frontend development and demos.
func NewSampleModel() *Model {
	m := NewModel()

	readerID := NodeID(typeid.NewNodeID())
	groupID := NodeID(typeid.NewNodeID())
	transformID := NodeID(typeid.NewNodeID())
	gradeID := NodeID(typeid.NewNodeID())
	blurID := NodeID(typeid.NewNodeID())

	m.AddNode(&Node{ID: readerID, Name: "Read1", Type: NodeReader, PanelOpen: true}, "")
	for name, v := range map[string]int{
		ParamFirstFrame:   1,
		ParamLastFrame:    48,
		ParamStartingTime: 1,
		ParamTimeOffset:   0,
	} {
		m.AddParam(&Param{
			ID:     ParamID(typeid.NewParamID()),
			Node:   readerID,
			Name:   name,
			Label:  name,
			Dims:   1,
			Scalar: v,
		})
	}

	m.AddNode(&Node{ID: groupID, Name: "Group1", Type: NodeGroup, PanelOpen: true}, "")
	m.AddNode(&Node{ID: transformID, Name: "Transform1", Type: NodeCommon, PanelOpen: true}, groupID)
	m.AddNode(&Node{ID: gradeID, Name: "Grade1", Type: NodeCommon, PanelOpen: true}, groupID)

	translate := &Param{
		ID:         ParamID(typeid.NewParamID()),
		Node:       transformID,
		Name:       "translate",
		Label:      "Translate",
		Dims:       2,
		CanAnimate: true,
	}
	m.AddParam(translate)
	m.SetKeyframe(translate.ID, 0, Keyframe{Time: 5, Value: 0, Interp: InterpSmooth})
	m.SetKeyframe(translate.ID, 0, Keyframe{Time: 12, Value: 120, Interp: InterpSmooth})
	m.SetKeyframe(translate.ID, 1, Keyframe{Time: 8, Value: 0, Interp: InterpLinear})
	m.SetKeyframe(translate.ID, 1, Keyframe{Time: 30, Value: -40, Interp: InterpLinear})

	gain := &Param{
		ID:         ParamID(typeid.NewParamID()),
		Node:       gradeID,
		Name:       "gain",
		Label:      "Gain",
		Dims:       1,
		CanAnimate: true,
	}
	m.AddParam(gain)
	m.SetKeyframe(gain.ID, 0, Keyframe{Time: 10, Value: 1, Interp: InterpCatmullRom})
	m.SetKeyframe(gain.ID, 0, Keyframe{Time: 24, Value: 2.5, Interp: InterpCatmullRom})

	m.AddNode(&Node{ID: blurID, Name: "Blur1", Type: NodeCommon, PanelOpen: true}, "")
	size := &Param{
		ID:         ParamID(typeid.NewParamID()),
		Node:       blurID,
		Name:       "size",
		Label:      "Size",
		Dims:       1,
		CanAnimate: true,
	}
	m.AddParam(size)
	m.SetKeyframe(size.ID, 0, Keyframe{Time: 3, Value: 0, Interp: InterpConstant})
	m.SetKeyframe(size.ID, 0, Keyframe{Time: 40, Value: 15, Interp: InterpConstant})

	return m
}
