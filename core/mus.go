package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the types that storage collaborators persist.
// Timestamps are encoded as Unix microseconds.
var (
	TurnMUS    = turnMUS{}
	SessionMUS = sessionMUS{}
)

type turnMUS struct{}

func (turnMUS) Marshal(t ConversationTurn, bs []byte) (n int) {
	n = ord.String.Marshal(t.Query, bs)
	n += ord.String.Marshal(t.Response, bs[n:])
	n += ord.String.Marshal(string(t.Source), bs[n:])
	n += varint.Float64.Marshal(t.Confidence, bs[n:])
	n += varint.Uint64.Marshal(uint64(t.Timestamp.UnixMicro()), bs[n:])
	return
}

func (turnMUS) Unmarshal(bs []byte) (t ConversationTurn, n int, err error) {
	var n1 int
	t.Query, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	t.Response, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var source string
	source, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	t.Source = SourceTag(source)
	t.Confidence, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var micros uint64
	micros, n1, err = varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	t.Timestamp = time.UnixMicro(int64(micros)).UTC()
	return
}

func (turnMUS) Size(t ConversationTurn) (size int) {
	size = ord.String.Size(t.Query)
	size += ord.String.Size(t.Response)
	size += ord.String.Size(string(t.Source))
	size += varint.Float64.Size(t.Confidence)
	size += varint.Uint64.Size(uint64(t.Timestamp.UnixMicro()))
	return
}

func (turnMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	for i := 0; i < 3; i++ {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	n1, err = varint.Float64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Uint64.Skip(bs[n:])
	n += n1
	return
}

type sessionMUS struct{}

func (sessionMUS) Marshal(s Session, bs []byte) (n int) {
	n = ord.String.Marshal(s.ID, bs)
	n += varint.PositiveInt.Marshal(len(s.Turns), bs[n:])
	for _, turn := range s.Turns {
		n += TurnMUS.Marshal(turn, bs[n:])
	}
	return
}

func (sessionMUS) Unmarshal(bs []byte) (s Session, n int, err error) {
	var n1 int
	s.ID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var count int
	count, n1, err = varint.PositiveInt.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	s.Turns = make([]ConversationTurn, 0, count)
	for i := 0; i < count; i++ {
		var turn ConversationTurn
		turn, n1, err = TurnMUS.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
		s.Turns = append(s.Turns, turn)
	}
	return
}

func (sessionMUS) Size(s Session) (size int) {
	size = ord.String.Size(s.ID)
	size += varint.PositiveInt.Size(len(s.Turns))
	for _, turn := range s.Turns {
		size += TurnMUS.Size(turn)
	}
	return
}

func (sessionMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var count int
	count, n1, err = varint.PositiveInt.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	for i := 0; i < count; i++ {
		n1, err = TurnMUS.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}
