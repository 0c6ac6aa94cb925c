package performer

import "dspcc/internal/errors"

// AudioInputBinding is one bound audio input endpoint (spec §3.2). Scratch
// is non-nil iff NumChannels > 1, sized at prepare time to
// min(maxInternalBlockSize, callerMaxBlockSize).
type AudioInputBinding struct {
	Endpoint         EndpointHandle
	StartChannelIndex int
	NumChannels      int
	Scratch          [][]float32
}

// AudioOutputBinding is one bound audio output endpoint (spec §3.2).
type AudioOutputBinding struct {
	Endpoint          EndpointHandle
	StartChannelIndex int
	NumChannels       int
}

// BindingTables enumerates and classifies a performer's endpoints into the
// role-specific tables the rest of Core B consumes (spec §4.B.1 "Binding
// Initialisation"). Build fills it once; it has no reset operation.
type BindingTables struct {
	AudioInputs  []AudioInputBinding
	AudioOutputs []AudioOutputBinding
	MIDIInputs   []EndpointHandle
	MIDIOutputs  []EndpointHandle
	Parameters   []EndpointHandle
	Timeline     []EndpointHandle
	EventOutputs []EndpointHandle
}

// internalMaxBlockSize is the compile-time constant bounding one sub-render
// (spec §4.B.1: "The internal max block size is a compile-time constant of
// 512").
const internalMaxBlockSize = 512

// Build enumerates p's endpoints and populates every role table, asserting
// that audio endpoints have a consistent channel count and frame type
// (spec §4.B.1, §7 "configuration mismatch"). callerMaxBlockSize bounds the
// scratch buffers allocated for multi-channel audio inputs.
func Build(p Performer, callerMaxBlockSize int) (*BindingTables, error) {
	bt := &BindingTables{}
	inChannels, outChannels := 0, 0
	scratchSize := callerMaxBlockSize
	if scratchSize > internalMaxBlockSize {
		scratchSize = internalMaxBlockSize
	}

	for _, ep := range p.Endpoints() {
		switch ep.Role {
		case RoleAudioIn:
			if err := assertAudioShape(ep); err != nil {
				return nil, err
			}
			b := AudioInputBinding{
				Endpoint:          ep.Handle,
				StartChannelIndex: inChannels,
				NumChannels:       ep.NumChannels,
			}
			inChannels += ep.NumChannels
			if ep.NumChannels > 1 {
				b.Scratch = make([][]float32, ep.NumChannels)
				for c := range b.Scratch {
					b.Scratch[c] = make([]float32, scratchSize)
				}
			}
			bt.AudioInputs = append(bt.AudioInputs, b)

		case RoleAudioOut:
			if err := assertAudioShape(ep); err != nil {
				return nil, err
			}
			bt.AudioOutputs = append(bt.AudioOutputs, AudioOutputBinding{
				Endpoint:          ep.Handle,
				StartChannelIndex: outChannels,
				NumChannels:       ep.NumChannels,
			})
			outChannels += ep.NumChannels

		case RoleMIDIIn:
			bt.MIDIInputs = append(bt.MIDIInputs, ep.Handle)
		case RoleMIDIOut:
			bt.MIDIOutputs = append(bt.MIDIOutputs, ep.Handle)
		case RoleParameterIn:
			bt.Parameters = append(bt.Parameters, ep.Handle)
		case RoleTimelineIn:
			bt.Timeline = append(bt.Timeline, ep.Handle)
		case RoleEventOut:
			bt.EventOutputs = append(bt.EventOutputs, ep.Handle)
		}
	}

	return bt, nil
}

// assertAudioShape requires an audio endpoint's frame type to be either a
// float scalar or a vector of floats, and the declared channel count to
// match the vector width (or be 1 for scalars) (spec §4.B.1).
func assertAudioShape(ep EndpointInfo) error {
	switch ep.DataType {
	case DataFloatScalar:
		if ep.NumChannels != 1 {
			return errors.NewConfigError("audio endpoint declared as float scalar must have NumChannels == 1")
		}
	case DataFloatVector:
		if ep.NumChannels < 1 {
			return errors.NewConfigError("audio endpoint declared as float vector must have NumChannels >= 1")
		}
	default:
		return errors.NewConfigError("audio endpoint must be a float scalar or a vector of floats")
	}
	return nil
}

// InternalMaxBlockSize exposes the compile-time sub-render bound to callers
// that need to decide between render and renderInChunks (spec §4.B.6).
func InternalMaxBlockSize() int { return internalMaxBlockSize }
