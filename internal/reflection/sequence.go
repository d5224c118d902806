package reflection

import "reflect"

// Repeat builds a value of sequence shaped type t holding elem in every slot.
// Slices, iterators and channels get n slots, arrays keep their declared
// length.
func Repeat(t reflect.Type, shape Shape, elem reflect.Value, n int) reflect.Value {
	switch shape {
	case ShapeArray:
		arr := reflect.New(t).Elem()
		for i := 0; i < arr.Len(); i++ {
			arr.Index(i).Set(elem)
		}
		return arr

	case ShapeSlice:
		s := reflect.MakeSlice(t, n, n)
		for i := 0; i < n; i++ {
			s.Index(i).Set(elem)
		}
		return s

	case ShapeSeq:
		items := reflect.MakeSlice(reflect.SliceOf(t.In(0).In(0)), n, n)
		for i := 0; i < n; i++ {
			items.Index(i).Set(elem)
		}
		return SeqOf(t, items)

	case ShapeChan:
		ch := reflect.MakeChan(reflect.ChanOf(reflect.BothDir, t.Elem()), n)
		for i := 0; i < n; i++ {
			ch.Send(elem)
		}
		return ch.Convert(t)
	}

	return reflect.Zero(t)
}

// Empty returns an empty, non-nil value of a sequence shaped type.
func Empty(t reflect.Type, shape Shape) reflect.Value {
	switch shape {
	case ShapeSlice:
		return reflect.MakeSlice(t, 0, 0)
	case ShapeSeq:
		return SeqOf(t, reflect.MakeSlice(reflect.SliceOf(t.In(0).In(0)), 0, 0))
	case ShapeSeq2:
		return Seq2Of(t, reflect.Value{})
	case ShapeChan:
		return makeChan(t, 0)
	}
	return reflect.New(t).Elem()
}

// SeqOf adapts the slice items to the iter.Seq shaped type t.
func SeqOf(t reflect.Type, items reflect.Value) reflect.Value {
	return reflect.MakeFunc(t, func(args []reflect.Value) []reflect.Value {
		yield := args[0]
		for i := 0; i < items.Len(); i++ {
			if !yield.Call([]reflect.Value{items.Index(i)})[0].Bool() {
				break
			}
		}
		return nil
	})
}

// Seq2Of adapts the map m to the iter.Seq2 shaped type t. An invalid or nil m
// yields nothing.
func Seq2Of(t reflect.Type, m reflect.Value) reflect.Value {
	return reflect.MakeFunc(t, func(args []reflect.Value) []reflect.Value {
		if !m.IsValid() || m.IsNil() {
			return nil
		}

		yield := args[0]
		iter := m.MapRange()
		for iter.Next() {
			if !yield.Call([]reflect.Value{iter.Key(), iter.Value()})[0].Bool() {
				break
			}
		}
		return nil
	})
}
