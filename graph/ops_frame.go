package graph

// AddFrame inserts a purely organizational frame. Exposed input/output
// socket ids, if any, must already exist in the graph.
func AddFrame(g Graph, frame Frame) (Graph, error) {
	if _, exists := g.frames[frame.ID]; exists {
		return g, &DuplicateFrameError{FrameID: frame.ID}
	}
	for _, id := range frame.ExposedInputs {
		if _, ok := g.sockets[id]; !ok {
			return g, &MissingSocketError{SocketID: id}
		}
	}
	for _, id := range frame.ExposedOutputs {
		if _, ok := g.sockets[id]; !ok {
			return g, &MissingSocketError{SocketID: id}
		}
	}
	out := g.clone()
	stored := frame
	stored.ExposedInputs = append([]SocketId(nil), frame.ExposedInputs...)
	stored.ExposedOutputs = append([]SocketId(nil), frame.ExposedOutputs...)
	out.frames[frame.ID] = stored
	out.frameOrder = append(out.frameOrder, frame.ID)
	return out, nil
}

// RemoveFrame deletes a frame. Frames never own nodes or wires, so
// removing one has no cascading effect beyond dropping the frame record.
func RemoveFrame(g Graph, frameID FrameId) (Graph, error) {
	if _, ok := g.frames[frameID]; !ok {
		return g, &MissingFrameError{FrameID: frameID}
	}
	out := g.clone()
	delete(out.frames, frameID)
	var filtered []FrameId
	for _, id := range out.frameOrder {
		if id != frameID {
			filtered = append(filtered, id)
		}
	}
	out.frameOrder = filtered
	return out, nil
}

// MoveFrames repositions a batch of frames atomically: if any referenced
// frame is missing, none of them move.
func MoveFrames(g Graph, positions map[FrameId]Position) (Graph, error) {
	for id := range positions {
		if _, ok := g.frames[id]; !ok {
			return g, &MissingFrameError{FrameID: id}
		}
	}
	out := g.clone()
	for id, pos := range positions {
		f := out.frames[id]
		f.Position = pos
		out.frames[id] = f
	}
	return out, nil
}

// FrameUpdate describes the fields UpdateFrame may change; nil fields are
// left untouched.
type FrameUpdate struct {
	Title          *string
	Size           *Size
	Collapsed      *bool
	ExposedInputs  []SocketId
	ExposedOutputs []SocketId
}

// UpdateFrame applies a partial update to an existing frame's cosmetic
// and exposed-socket fields. Supplying ExposedInputs/ExposedOutputs
// replaces the corresponding list wholesale; every id supplied must
// already exist as a socket.
func UpdateFrame(g Graph, frameID FrameId, update FrameUpdate) (Graph, error) {
	f, ok := g.frames[frameID]
	if !ok {
		return g, &MissingFrameError{FrameID: frameID}
	}
	for _, id := range update.ExposedInputs {
		if _, ok := g.sockets[id]; !ok {
			return g, &MissingSocketError{SocketID: id}
		}
	}
	for _, id := range update.ExposedOutputs {
		if _, ok := g.sockets[id]; !ok {
			return g, &MissingSocketError{SocketID: id}
		}
	}
	if update.Title != nil {
		f.Title = *update.Title
	}
	if update.Size != nil {
		f.Size = *update.Size
	}
	if update.Collapsed != nil {
		f.Collapsed = *update.Collapsed
	}
	if update.ExposedInputs != nil {
		f.ExposedInputs = append([]SocketId(nil), update.ExposedInputs...)
	}
	if update.ExposedOutputs != nil {
		f.ExposedOutputs = append([]SocketId(nil), update.ExposedOutputs...)
	}
	out := g.clone()
	out.frames[frameID] = f
	return out, nil
}
