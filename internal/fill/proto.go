package fill

import (
	"reflect"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/junioryono/auto/internal/reflection"
)

var (
	messageType        = reflect.TypeFor[proto.Message]()
	dynamicMessageType = reflect.TypeFor[*dynamicpb.Message]()
)

var scalarTypes = map[protoreflect.Kind]reflect.Type{
	protoreflect.BoolKind:     reflect.TypeFor[bool](),
	protoreflect.Int32Kind:    reflect.TypeFor[int32](),
	protoreflect.Sint32Kind:   reflect.TypeFor[int32](),
	protoreflect.Sfixed32Kind: reflect.TypeFor[int32](),
	protoreflect.Int64Kind:    reflect.TypeFor[int64](),
	protoreflect.Sint64Kind:   reflect.TypeFor[int64](),
	protoreflect.Sfixed64Kind: reflect.TypeFor[int64](),
	protoreflect.Uint32Kind:   reflect.TypeFor[uint32](),
	protoreflect.Fixed32Kind:  reflect.TypeFor[uint32](),
	protoreflect.Uint64Kind:   reflect.TypeFor[uint64](),
	protoreflect.Fixed64Kind:  reflect.TypeFor[uint64](),
	protoreflect.FloatKind:    reflect.TypeFor[float32](),
	protoreflect.DoubleKind:   reflect.TypeFor[float64](),
	protoreflect.StringKind:   reflect.TypeFor[string](),
	protoreflect.BytesKind:    reflect.TypeFor[[]byte](),
}

func asMessage(v reflect.Value) (protoreflect.Message, bool) {
	if v.Kind() != reflect.Pointer || v.IsNil() || !v.Type().Implements(messageType) {
		return nil, false
	}

	msg := v.Interface().(proto.Message).ProtoReflect()
	return msg, msg.IsValid()
}

// fillMessage populates every unset field of m. Only the first member of a
// oneof is populated. A nested message that is still being filled further up
// the stack is never assigned, so the resulting message tree stays acyclic.
func (f *Filler) fillMessage(m protoreflect.Message) error {
	self := m.Interface()
	f.active[self] = struct{}{}
	defer delete(f.active, self)

	fields := m.Descriptor().Fields()
	for i := 0; i < fields.Len(); i++ {
		fd := fields.Get(i)
		if m.Has(fd) {
			continue
		}

		if oneof := fd.ContainingOneof(); oneof != nil && !oneof.IsSynthetic() {
			if oneof.Fields().Get(0).Number() != fd.Number() || m.WhichOneof(oneof) != nil {
				continue
			}
		}

		var err error
		switch {
		case fd.IsList():
			err = f.fillList(m, fd)
		case fd.IsMap():
			err = f.fillProtoMap(m, fd)
		default:
			var (
				v  protoreflect.Value
				ok bool
			)
			v, ok, err = f.protoValue(fd, func() protoreflect.Value { return m.NewField(fd) })
			if ok {
				m.Set(fd, v)
			}
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (f *Filler) fillList(m protoreflect.Message, fd protoreflect.FieldDescriptor) error {
	list := m.NewField(fd).List()
	v, ok, err := f.protoValue(fd, list.NewElement)
	if err != nil || !ok {
		return err
	}

	for i := 0; i < f.sequenceSize; i++ {
		list.Append(v)
	}
	m.Set(fd, protoreflect.ValueOfList(list))
	return nil
}

func (f *Filler) fillProtoMap(m protoreflect.Message, fd protoreflect.FieldDescriptor) error {
	mp := m.NewField(fd).Map()

	k, ok, err := f.protoValue(fd.MapKey(), nil)
	if err != nil || !ok {
		return err
	}

	v, ok, err := f.protoValue(fd.MapValue(), mp.NewValue)
	if err != nil || !ok {
		return err
	}

	mp.Set(k.MapKey(), v)
	m.Set(fd, protoreflect.ValueOfMap(mp))
	return nil
}

// protoValue synthesizes a single value for fd. newMessage allocates an
// empty message of the field's message type and is only called for message
// fields.
func (f *Filler) protoValue(fd protoreflect.FieldDescriptor, newMessage func() protoreflect.Value) (protoreflect.Value, bool, error) {
	switch fd.Kind() {
	case protoreflect.EnumKind:
		return f.protoEnum(fd)
	case protoreflect.MessageKind, protoreflect.GroupKind:
		if newMessage == nil {
			return protoreflect.Value{}, false, nil
		}
		return f.protoMessage(fd, newMessage().Message())
	}

	goType, ok := scalarTypes[fd.Kind()]
	if !ok {
		return protoreflect.Value{}, false, nil
	}

	v, err := f.resolver.Resolve(goType)
	if err != nil || !v.IsValid() {
		return protoreflect.Value{}, false, err
	}
	return protoreflect.ValueOf(v.Convert(goType).Interface()), true, nil
}

// protoEnum resolves the generated Go enum type when it is registered, so
// overrides for that type apply. Otherwise the default number is used.
func (f *Filler) protoEnum(fd protoreflect.FieldDescriptor) (protoreflect.Value, bool, error) {
	ed := fd.Enum()

	et, err := protoregistry.GlobalTypes.FindEnumByName(ed.FullName())
	if err == nil {
		v, err := f.resolver.Resolve(reflect.TypeOf(et.New(0)))
		if err != nil {
			return protoreflect.Value{}, false, err
		}

		if v.IsValid() && v.CanInterface() {
			if e, ok := v.Interface().(protoreflect.Enum); ok {
				return protoreflect.ValueOfEnum(e.Number()), true, nil
			}
		}
	}

	return protoreflect.ValueOfEnum(reflection.DefaultEnumNumber(ed)), true, nil
}

func (f *Filler) protoMessage(fd protoreflect.FieldDescriptor, empty protoreflect.Message) (protoreflect.Value, bool, error) {
	goType := reflect.TypeOf(empty.Interface())
	if goType == dynamicMessageType {
		return protoreflect.Value{}, false, nil
	}

	v, err := f.resolver.Resolve(goType)
	if err != nil {
		return protoreflect.Value{}, false, err
	}

	if !v.IsValid() || v.IsNil() {
		return protoreflect.Value{}, false, nil
	}

	msg := v.Interface().(proto.Message)
	if _, filling := f.active[msg]; filling {
		return protoreflect.Value{}, false, nil
	}

	rm := msg.ProtoReflect()
	if rm.Descriptor().FullName() != fd.Message().FullName() {
		return protoreflect.Value{}, false, nil
	}
	return protoreflect.ValueOfMessage(rm), true, nil
}
