// Package codec converts an element graph to and from its line-oriented
// text form:
//
//	PIN;<id>;<x>;<y>
//	AND;<id>;<x>;<y>;<pin0>;<pin1>;<pin2>;<pin3>
//	OR;<id>;<x>;<y>;<threshold>;<pin0>;<pin1>;<pin2>;<pin3>
//	WIRE;<id>;<startParent>;<startPin>;<endParent>;<endPin>
//
// Each record sits on its own line. Records are written in ascending id
// order. A parent of -1 marks a standalone pin and is never a valid id.
// Lines starting with # are ignored.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	"logicdraw/model"
)

const (
	tagPin  = "PIN"
	tagAnd  = "AND"
	tagOr   = "OR"
	tagWire = "WIRE"
)

// Encode serialises g. Owned pins are not written; they are rebuilt from
// their gate's record.
func Encode(g *model.Graph) string {
	var b strings.Builder
	for _, e := range g.Elements() {
		switch v := e.(type) {
		case *model.Pin:
			if !v.Standalone() {
				continue
			}
			fmt.Fprintf(&b, "%s;%d;%s;%s\n", tagPin, v.ID, num(v.X), num(v.Y))
		case *model.Gate:
			if v.Type == model.KindOrGate {
				fmt.Fprintf(&b, "%s;%d;%s;%s;%d%s\n", tagOr, v.ID, num(v.X), num(v.Y), v.Threshold, pinList(v.Pins))
			} else {
				fmt.Fprintf(&b, "%s;%d;%s;%s%s\n", tagAnd, v.ID, num(v.X), num(v.Y), pinList(v.Pins))
			}
		case *model.Wire:
			fmt.Fprintf(&b, "%s;%d;%d;%d;%d;%d\n", tagWire, v.ID,
				parentOf(g, v.Start), v.Start, parentOf(g, v.End), v.End)
		}
	}
	return b.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func pinList(ids []int) string {
	var b strings.Builder
	for _, id := range ids {
		b.WriteByte(';')
		b.WriteString(strconv.Itoa(id))
	}
	return b.String()
}

func parentOf(g *model.Graph, pinID int) int {
	p, err := g.Pin(pinID)
	if err != nil {
		return model.NoID
	}
	return p.Parent
}

// Decode parses text into a new graph whose pins use opts. Gates and pins
// are created first, wires second. Any unresolved or inconsistent reference
// aborts the load.
func Decode(text string, opts model.Options) (*model.Graph, error) {
	doc, err := diagramParser.ParseString("", text)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	g := model.New(opts)
	for _, r := range doc.Records {
		if err := addNode(g, r); err != nil {
			return nil, fmt.Errorf("line %d: %w", r.Pos.Line, err)
		}
	}
	for _, r := range doc.Records {
		if r.Wire == nil {
			continue
		}
		if err := addWire(g, r.Wire); err != nil {
			return nil, fmt.Errorf("line %d: %w", r.Pos.Line, err)
		}
	}
	g.RecomputeNextID()
	return g, nil
}

func checkID(kind model.Kind, id int) error {
	if id < 0 {
		return fmt.Errorf("%s id %d is negative", kind, id)
	}
	return nil
}

func addNode(g *model.Graph, r *record) error {
	switch {
	case r.Pin != nil:
		if err := checkID(model.KindPin, r.Pin.ID); err != nil {
			return err
		}
		return g.Add(g.NewPin(r.Pin.ID, r.Pin.X, r.Pin.Y))
	case r.And != nil:
		_, err := addGate(g, model.KindAndGate, r.And.ID, r.And.X, r.And.Y, r.And.Pins)
		return err
	case r.Or != nil:
		if r.Or.Threshold < 0 {
			return fmt.Errorf("%s %d has negative threshold %d", model.KindOrGate, r.Or.ID, r.Or.Threshold)
		}
		gate, err := addGate(g, model.KindOrGate, r.Or.ID, r.Or.X, r.Or.Y, r.Or.Pins)
		if err != nil {
			return err
		}
		gate.Threshold = r.Or.Threshold
	}
	return nil
}

func addGate(g *model.Graph, kind model.Kind, id int, x, y float64, pinIDs []int) (*model.Gate, error) {
	if len(pinIDs) != model.GatePinCount {
		return nil, fmt.Errorf("%s %d has %d pins, want %d", kind, id, len(pinIDs), model.GatePinCount)
	}
	if err := checkID(kind, id); err != nil {
		return nil, err
	}
	for _, pid := range pinIDs {
		if pid < 0 {
			return nil, fmt.Errorf("%s %d: pin id %d is negative", kind, id, pid)
		}
	}
	var ids [model.GatePinCount]int
	copy(ids[:], pinIDs)

	gate, pins := g.NewGate(kind, id, x, y, ids)
	if err := g.Add(gate); err != nil {
		return nil, err
	}
	for _, p := range pins {
		if err := g.Add(p); err != nil {
			return nil, fmt.Errorf("%s %d: %w", kind, id, err)
		}
	}
	return gate, nil
}

func addWire(g *model.Graph, w *wireRecord) error {
	if err := checkID(model.KindWire, w.ID); err != nil {
		return err
	}
	if w.StartPin == w.EndPin {
		return fmt.Errorf("wire %d starts and ends on pin %d", w.ID, w.StartPin)
	}
	if err := checkParent(g, w.ID, w.StartPin, w.StartParent); err != nil {
		return err
	}
	if err := checkParent(g, w.ID, w.EndPin, w.EndParent); err != nil {
		return err
	}
	_, err := g.Connect(w.ID, w.StartPin, w.EndPin)
	return err
}

func checkParent(g *model.Graph, wireID, pinID, parent int) error {
	p, err := g.Pin(pinID)
	if err != nil {
		return fmt.Errorf("wire %d: %w", wireID, err)
	}
	if p.Parent != parent {
		return fmt.Errorf("wire %d: pin %d belongs to %d, not %d", wireID, pinID, p.Parent, parent)
	}
	return nil
}
