package dispatch

import "dspcc/internal/performer"

// RenderInChunks is the Chunking Wrapper (spec §4.B.6): it repeatedly
// calls Render with sub-ranges of performer.InternalMaxBlockSize(),
// preserving MIDI timing by trimming midiIn to the slice whose FrameIndex
// falls before each sub-call's end frame. The caller's midiIn is not
// modified; the events not yet delivered are returned. Each sub-render
// allocates its sliced audio blocks and MIDI windows.
func (w *Wrapper) RenderInChunks(input, output AudioBlock, midiIn performer.MIDIEventInputList, midiOut func(performer.MIDIEvent)) (performer.MIDIEventInputList, error) {
	maxChunk := performer.InternalMaxBlockSize()
	total := output.Frames
	done := 0

	for done < total {
		n := total - done
		if n > maxChunk {
			n = maxChunk
		}

		subInput := sliceBlock(input, done, n)
		subOutput := sliceBlock(output, done, n)

		endFrame := uint32(done + n)
		subMIDI, rest := splitMIDIBefore(midiIn, endFrame)
		subMIDI = shiftMIDI(subMIDI, uint32(done))

		if _, err := w.Render(subInput, subOutput, subMIDI, midiOut); err != nil {
			return midiIn, err
		}

		midiIn = rest
		done += n
	}

	return midiIn, nil
}

// sliceBlock returns the sub-range [offset, offset+n) of every channel in
// b, channel-major.
func sliceBlock(b AudioBlock, offset, n int) AudioBlock {
	channels := make(performer.AudioBuffer, len(b.Channels))
	for c, ch := range b.Channels {
		channels[c] = ch[offset : offset+n]
	}
	return AudioBlock{Frames: n, Channels: channels}
}

// splitMIDIBefore partitions midiIn into the events strictly before
// endFrame (returned first) and the remainder (spec §4.B.6
// "midiIn.removeEventsBefore(endFrame)").
func splitMIDIBefore(midiIn performer.MIDIEventInputList, endFrame uint32) (performer.MIDIEventInputList, performer.MIDIEventInputList) {
	i := 0
	for i < midiIn.Len() && midiIn.At(i).FrameIndex < endFrame {
		i++
	}
	head := make([]performer.MIDIEvent, i)
	for j := 0; j < i; j++ {
		head[j] = midiIn.At(j)
	}
	return performer.NewMIDIEventInputList(head), midiIn.RemoveEventsBefore(endFrame)
}

// shiftMIDI rebases every event's FrameIndex to be relative to the
// sub-render's own start frame, since each sub-call's Render treats its
// midiIn as starting at frame 0 of that sub-block.
func shiftMIDI(events performer.MIDIEventInputList, offset uint32) performer.MIDIEventInputList {
	shifted := make([]performer.MIDIEvent, events.Len())
	for i := 0; i < events.Len(); i++ {
		ev := events.At(i)
		ev.FrameIndex -= offset
		shifted[i] = ev
	}
	return performer.NewMIDIEventInputList(shifted)
}
