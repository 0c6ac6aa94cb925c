package performer

import "testing"

func endpoint(h EndpointHandle, role Role, dt DataType, channels int) EndpointInfo {
	return EndpointInfo{Handle: h, Name: "ep", Direction: DirectionIn, Kind: KindStream, Role: role, DataType: dt, NumChannels: channels}
}

type stubPerformer struct{ endpoints []EndpointInfo }

func (s stubPerformer) Endpoints() []EndpointInfo                                    { return s.endpoints }
func (stubPerformer) Prepare(int)                                                    {}
func (stubPerformer) Advance()                                                       {}
func (stubPerformer) SetNextInputStreamFrames(EndpointHandle, any)                    {}
func (stubPerformer) SetSparseInputStreamTarget(EndpointHandle, float32, int32)       {}
func (stubPerformer) AddInputEvent(EndpointHandle, any)                              {}
func (stubPerformer) SetInputValue(EndpointHandle, any)                              {}
func (stubPerformer) GetOutputStreamFrames(EndpointHandle) AudioBuffer                { return nil }
func (stubPerformer) IterateOutputEvents(EndpointHandle, OutputEventCallback)         {}

func TestBuild_ClassifiesEveryRole(t *testing.T) {
	p := stubPerformer{endpoints: []EndpointInfo{
		endpoint(0, RoleAudioIn, DataFloatScalar, 1),
		endpoint(1, RoleAudioOut, DataFloatScalar, 1),
		endpoint(2, RoleMIDIIn, DataMIDI, 1),
		endpoint(3, RoleMIDIOut, DataMIDI, 1),
		endpoint(4, RoleParameterIn, DataFloatScalar, 1),
		endpoint(5, RoleTimelineIn, DataStructured, 1),
		endpoint(6, RoleEventOut, DataStructured, 1),
	}}

	bt, err := Build(p, 256)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(bt.AudioInputs) != 1 || len(bt.AudioOutputs) != 1 || len(bt.MIDIInputs) != 1 ||
		len(bt.MIDIOutputs) != 1 || len(bt.Parameters) != 1 || len(bt.Timeline) != 1 || len(bt.EventOutputs) != 1 {
		t.Fatalf("expected exactly one binding per role, got %+v", bt)
	}
}

func TestBuild_MultiChannelAudioInputAllocatesScratchBoundedByMaxBlockSize(t *testing.T) {
	p := stubPerformer{endpoints: []EndpointInfo{
		endpoint(0, RoleAudioIn, DataFloatVector, 4),
	}}

	bt, err := Build(p, 128)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b := bt.AudioInputs[0]
	if len(b.Scratch) != 4 {
		t.Fatalf("expected 4 scratch channels, got %d", len(b.Scratch))
	}
	for _, ch := range b.Scratch {
		if len(ch) != 128 {
			t.Fatalf("expected scratch sized to callerMaxBlockSize=128, got %d", len(ch))
		}
	}
}

func TestBuild_ScratchBoundedByInternalMaxBlockSize(t *testing.T) {
	p := stubPerformer{endpoints: []EndpointInfo{
		endpoint(0, RoleAudioIn, DataFloatVector, 2),
	}}

	bt, err := Build(p, 4096)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, ch := range bt.AudioInputs[0].Scratch {
		if len(ch) != InternalMaxBlockSize() {
			t.Fatalf("expected scratch capped at InternalMaxBlockSize()=%d, got %d", InternalMaxBlockSize(), len(ch))
		}
	}
}

func TestBuild_SingleChannelAudioInputHasNoScratch(t *testing.T) {
	p := stubPerformer{endpoints: []EndpointInfo{
		endpoint(0, RoleAudioIn, DataFloatScalar, 1),
	}}

	bt, err := Build(p, 256)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if bt.AudioInputs[0].Scratch != nil {
		t.Fatalf("expected no scratch buffer for a single-channel audio input")
	}
}

func TestBuild_AudioEndpointShapeMismatchIsConfigurationError(t *testing.T) {
	p := stubPerformer{endpoints: []EndpointInfo{
		endpoint(0, RoleAudioIn, DataFloatScalar, 2),
	}}

	if _, err := Build(p, 256); err == nil {
		t.Fatal("expected a configuration-mismatch error for a float-scalar endpoint declaring NumChannels=2")
	}
}

func TestBuild_AudioEndpointWrongDataTypeIsConfigurationError(t *testing.T) {
	p := stubPerformer{endpoints: []EndpointInfo{
		endpoint(0, RoleAudioOut, DataMIDI, 1),
	}}

	if _, err := Build(p, 256); err == nil {
		t.Fatal("expected a configuration-mismatch error for a non-float audio endpoint")
	}
}
