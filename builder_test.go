package auto_test

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/typepb"

	"github.com/junioryono/auto"
	"github.com/junioryono/auto/internal/testutil"
)

func TestBuilder_CreateObject(t *testing.T) {
	t.Parallel()

	t.Run("nil type", func(t *testing.T) {
		t.Parallel()

		_, err := auto.NewBuilder(nil).CreateObject(nil)
		assert.ErrorIs(t, err, auto.ErrTypeNil)
	})

	t.Run("returns any of the requested type", func(t *testing.T) {
		t.Parallel()

		obj, err := auto.NewBuilder(nil).CreateObject(reflect.TypeFor[*testutil.Customer]())
		require.NoError(t, err)
		assert.IsType(t, &testutil.Customer{}, obj)
	})

	t.Run("nil interface", func(t *testing.T) {
		t.Parallel()

		obj, err := auto.NewBuilder(nil).CreateObject(reflect.TypeFor[testutil.Clock]())
		require.NoError(t, err)
		assert.Nil(t, obj)
	})
}

func TestBuilder_FillsObjectGraph(t *testing.T) {
	t.Parallel()

	b := testutil.NewConfigurationBuilder(t).WithScalarDefaults().BuildBuilder()
	c := testutil.AssertCreatable[*testutil.Customer](t, b)

	testutil.AssertFilled(t, c, "Notes")
	assert.Empty(t, c.Notes)
	assert.Empty(t, c.Internal())

	assert.Equal(t, 1, c.Age)
	assert.True(t, c.Active)
	assert.Len(t, c.Tags, auto.DefaultSequenceSize)
	assert.Len(t, c.Scores, 1)
	testutil.AssertFilled(t, c.Home)
	testutil.AssertFilled(t, c.Work)
}

func TestBuilder_Memoization(t *testing.T) {
	t.Parallel()

	b := testutil.NewConfigurationBuilder(t).BuildBuilder()

	first := testutil.AssertCreatable[*testutil.Customer](t, b)
	second := testutil.AssertCreatable[*testutil.Customer](t, b)
	assert.Same(t, first, second)

	order := testutil.AssertCreatable[*testutil.Order](t, b)
	assert.Same(t, first, order.Customer)

	other := testutil.AssertCreatable[*testutil.Customer](t, testutil.NewConfigurationBuilder(t).BuildBuilder())
	assert.NotSame(t, first, other)
}

func TestBuilder_SequenceElementsShared(t *testing.T) {
	t.Parallel()

	b := testutil.NewConfigurationBuilder(t).WithSequenceSize(4).BuildBuilder()
	order := testutil.AssertCreatable[*testutil.Order](t, b)

	require.Len(t, order.Lines, 4)
	for _, line := range order.Lines {
		assert.Same(t, order.Lines[0], line)
	}
}

func TestBuilder_CyclicGraph(t *testing.T) {
	t.Parallel()

	b := testutil.NewConfigurationBuilder(t).BuildBuilder()
	p := testutil.AssertCreatable[*testutil.Parent](t, b)

	require.NotNil(t, p.Child)
	assert.Same(t, p, p.Child.Parent)
	assert.NotEmpty(t, p.Child.Name)
}

func TestBuilder_Constructors(t *testing.T) {
	t.Parallel()

	t.Run("fewest non-primitive parameters wins", func(t *testing.T) {
		t.Parallel()

		b := testutil.NewConfigurationBuilder(t).
			WithConstructor(testutil.NewService).
			WithConstructor(testutil.NewServiceWithEndpoint).
			BuildBuilder()

		svc := testutil.AssertCreatable[*testutil.Service](t, b)
		assert.Equal(t, svc.Host+":0", svc.CtorArg())
		assert.Zero(t, svc.Port)
	})

	t.Run("primitive arguments take default values", func(t *testing.T) {
		t.Parallel()

		b := testutil.NewConfigurationBuilder(t).
			WithConstructor(testutil.NewServiceWithEndpoint).
			BuildBuilder()

		svc := testutil.AssertCreatable[*testutil.Service](t, b)
		assert.Zero(t, svc.Port)
		assert.NotEmpty(t, svc.Host)
		assert.Equal(t, svc.Host+":0", svc.CtorArg())
	})

	t.Run("primitive arguments with scalar defaults", func(t *testing.T) {
		t.Parallel()

		b := testutil.NewConfigurationBuilder(t).
			WithScalarDefaults().
			WithConstructor(testutil.NewServiceWithEndpoint).
			BuildBuilder()

		svc := testutil.AssertCreatable[*testutil.Service](t, b)
		assert.Equal(t, 1, svc.Port)
		assert.Equal(t, svc.Host+":1", svc.CtorArg())
	})

	t.Run("constructed instance is filled", func(t *testing.T) {
		t.Parallel()

		b := testutil.NewConfigurationBuilder(t).
			WithConstructor(testutil.NewService).
			WithConstructor(testutil.NewMemoryRepository).
			BuildBuilder()

		svc := testutil.AssertCreatable[*testutil.Service](t, b)
		assert.Equal(t, "repo", svc.CtorArg())
		require.IsType(t, &testutil.MemoryRepository{}, svc.Repo)
		assert.Equal(t, "memory", svc.Repo.(*testutil.MemoryRepository).Name)
		assert.Equal(t, context.Background(), svc.Ctx)
		assert.Equal(t, time.Second, svc.Timeout)
	})

	t.Run("failing constructor falls back to zero", func(t *testing.T) {
		t.Parallel()

		b := testutil.NewConfigurationBuilder(t).
			WithConstructor(testutil.NewFailingService).
			BuildBuilder()

		svc, err := auto.Create[*testutil.Service](b)
		require.NoError(t, err)
		assert.Nil(t, svc)
	})

	t.Run("non-public used only as fallback", func(t *testing.T) {
		t.Parallel()

		b := testutil.NewConfigurationBuilder(t).
			WithConstructor(func() *testutil.Address {
				return &testutil.Address{City: "hidden"}
			}, auto.WithVisibility(auto.NonPublic)).
			BuildBuilder()

		assert.Equal(t, "hidden", testutil.AssertCreatable[*testutil.Address](t, b).City)
	})
}

func TestBuilder_Overrides(t *testing.T) {
	t.Parallel()

	t.Run("override wins over constructor", func(t *testing.T) {
		t.Parallel()

		sentinel := &testutil.Address{City: "sentinel"}
		b := testutil.NewConfigurationBuilder(t).
			WithConstructor(func() *testutil.Address { return &testutil.Address{} }).
			WithFactory(sentinel).
			BuildBuilder()

		assert.Same(t, sentinel, testutil.AssertCreatable[*testutil.Address](t, b))
	})

	t.Run("factory error propagates", func(t *testing.T) {
		t.Parallel()

		cfg := testutil.NewConfigurationBuilder(t).Build()
		require.NoError(t, cfg.Register(reflect.TypeFor[time.Time](), func(reflect.Type) (any, error) {
			return nil, testutil.ErrFactory
		}))

		testutil.AssertCreateFails[*testutil.Customer](t, auto.NewBuilder(cfg), testutil.ErrFactory)
	})

	t.Run("factory returning wrong type", func(t *testing.T) {
		t.Parallel()

		cfg := auto.NewConfiguration()
		require.NoError(t, cfg.Register(reflect.TypeFor[*testutil.Address](), func(reflect.Type) (any, error) {
			return "oops", nil
		}))

		_, err := auto.Create[*testutil.Address](auto.NewBuilder(cfg))
		var mismatch auto.TypeMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, reflect.TypeFor[*testutil.Address](), mismatch.Expected)
	})

	t.Run("factory returning nil", func(t *testing.T) {
		t.Parallel()

		cfg := auto.NewConfiguration()
		require.NoError(t, cfg.Register(reflect.TypeFor[*testutil.Address](), func(reflect.Type) (any, error) {
			return nil, nil
		}))

		addr, err := auto.Create[*testutil.Address](auto.NewBuilder(cfg))
		require.NoError(t, err)
		assert.Nil(t, addr)
	})

	t.Run("unnamed slice keeps the sequence size", func(t *testing.T) {
		t.Parallel()

		cfg := testutil.NewConfigurationBuilder(t).WithSequenceSize(3).Build()
		require.NoError(t, auto.Register(cfg, func() []int { return []int{7} }))
		require.NoError(t, auto.Register(cfg, func() int { return 5 }))

		assert.Equal(t, []int{5, 5, 5}, testutil.AssertCreatable[[]int](t, auto.NewBuilder(cfg)))
	})

	t.Run("override for defined array type", func(t *testing.T) {
		t.Parallel()

		id := testutil.AssertCreatable[uuid.UUID](t, testutil.NewConfigurationBuilder(t).BuildBuilder())
		assert.NotEqual(t, uuid.Nil, id)
		assert.Equal(t, uuid.Version(4), id.Version())
	})
}

func TestBuilder_Sequences(t *testing.T) {
	t.Parallel()

	b := testutil.NewConfigurationBuilder(t).WithScalarDefaults().WithSequenceSize(3).BuildBuilder()

	t.Run("slice", func(t *testing.T) {
		assert.Len(t, testutil.AssertCreatable[[]string](t, b), 3)
	})

	t.Run("array keeps its length", func(t *testing.T) {
		arr := testutil.AssertCreatable[[5]int](t, b)
		assert.Equal(t, [5]int{1, 1, 1, 1, 1}, arr)
	})

	t.Run("iter.Seq", func(t *testing.T) {
		seq := testutil.AssertCreatable[iter.Seq[*testutil.Address]](t, b)
		assert.Len(t, slices.Collect(seq), 3)
	})

	t.Run("iter.Seq2", func(t *testing.T) {
		seq := testutil.AssertCreatable[iter.Seq2[string, int]](t, b)
		m := maps.Collect(seq)
		require.Len(t, m, 1)
		for _, v := range m {
			assert.Equal(t, 1, v)
		}
	})

	t.Run("channel", func(t *testing.T) {
		ch := testutil.AssertCreatable[chan *testutil.OrderLine](t, b)
		assert.Equal(t, 3, len(ch))
	})
}

func TestBuilder_Interfaces(t *testing.T) {
	t.Parallel()

	t.Run("binding", func(t *testing.T) {
		t.Parallel()

		b := testutil.NewConfigurationBuilder(t).
			WithBinding(reflect.TypeFor[testutil.Repository](), reflect.TypeFor[*testutil.MemoryRepository]()).
			BuildBuilder()

		repo := testutil.AssertCreatable[testutil.Repository](t, b)
		require.IsType(t, &testutil.MemoryRepository{}, repo)
		assert.NotEmpty(t, repo.(*testutil.MemoryRepository).Name)
	})

	t.Run("constructor result implementing interface", func(t *testing.T) {
		t.Parallel()

		b := testutil.NewConfigurationBuilder(t).
			WithConstructor(testutil.NewMemoryRepository).
			BuildBuilder()

		repo := testutil.AssertCreatable[testutil.Repository](t, b)
		assert.Equal(t, "memory", repo.(*testutil.MemoryRepository).Name)
	})

	t.Run("constructor returning the interface", func(t *testing.T) {
		t.Parallel()

		b := testutil.NewConfigurationBuilder(t).
			WithConstructor(testutil.NewMemoryRepository).
			WithConstructor(testutil.NewRepository).
			BuildBuilder()

		repo := testutil.AssertCreatable[testutil.Repository](t, b)
		require.IsType(t, &testutil.MemoryRepository{}, repo)
		assert.Equal(t, "from interface constructor", repo.(*testutil.MemoryRepository).Name)
		assert.Same(t, repo, testutil.AssertCreatable[testutil.Repository](t, b))

		svc := testutil.AssertCreatable[*testutil.Service](t, b)
		assert.Same(t, repo, svc.Repo)
	})

	t.Run("no implementation", func(t *testing.T) {
		t.Parallel()

		clock := testutil.AssertCreatable[testutil.Clock](t, testutil.NewConfigurationBuilder(t).BuildBuilder())
		assert.Nil(t, clock)
	})
}

func TestBuilder_DefaultFactories(t *testing.T) {
	t.Parallel()

	type Email string

	cfg := testutil.NewConfigurationBuilder(t).Build()
	cfg.SetStringPrefix("fx-")
	b := auto.NewBuilder(cfg)

	s := testutil.AssertCreatable[string](t, b)
	assert.True(t, strings.HasPrefix(s, "fx-"))
	_, err := uuid.Parse(strings.TrimPrefix(s, "fx-"))
	assert.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(testutil.AssertCreatable[Email](t, b)), "fx-"))

	now := testutil.AssertCreatable[time.Time](t, b)
	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond())

	assert.Equal(t, time.Second, testutil.AssertCreatable[time.Duration](t, b))
	assert.NotNil(t, testutil.AssertCreatable[context.Context](t, b))
	assert.Zero(t, testutil.AssertCreatable[int](t, b))
	assert.False(t, testutil.AssertCreatable[bool](t, b))
}

func TestBuilder_ScalarDefaults(t *testing.T) {
	t.Parallel()

	type Score float64

	b := testutil.NewConfigurationBuilder(t).WithScalarDefaults().BuildBuilder()

	assert.True(t, testutil.AssertCreatable[bool](t, b))
	assert.Equal(t, 1, testutil.AssertCreatable[int](t, b))
	assert.Equal(t, float32(1), testutil.AssertCreatable[float32](t, b))
	assert.Equal(t, uint8(1), testutil.AssertCreatable[uint8](t, b))
	assert.Equal(t, complex128(1), testutil.AssertCreatable[complex128](t, b))
	assert.Equal(t, Score(1), testutil.AssertCreatable[Score](t, b))
	assert.Equal(t, time.Second, testutil.AssertCreatable[time.Duration](t, b))

	t.Run("declared enums are excluded", func(t *testing.T) {
		t.Parallel()

		cfg := auto.NewConfiguration().UseScalarDefaults()
		require.NoError(t, auto.RegisterEnum(cfg, testutil.StatusPending, testutil.StatusShipped))

		status := testutil.AssertCreatable[testutil.OrderStatus](t, auto.NewBuilder(cfg))
		assert.Equal(t, testutil.StatusUnknown, status)
	})
}

func TestBuilder_WithoutDefaults(t *testing.T) {
	t.Parallel()

	b := testutil.NewBareConfigurationBuilder(t).BuildBuilder()

	assert.Empty(t, testutil.AssertCreatable[string](t, b))
	assert.Zero(t, testutil.AssertCreatable[int](t, b))

	c := testutil.AssertCreatable[*testutil.Customer](t, b)
	require.NotNil(t, c)
	assert.Empty(t, c.Name)
	assert.NotNil(t, c.Work)
	assert.Len(t, c.Tags, auto.DefaultSequenceSize)
}

func TestBuilder_Enums(t *testing.T) {
	t.Parallel()

	t.Run("declared enum", func(t *testing.T) {
		t.Parallel()

		cfg := testutil.NewConfigurationBuilder(t).Build()
		require.NoError(t, auto.RegisterEnum(cfg, testutil.StatusShipped, testutil.StatusPending))

		order := testutil.AssertCreatable[*testutil.Order](t, auto.NewBuilder(cfg))
		assert.Equal(t, testutil.StatusShipped, order.Status)
	})

	t.Run("protobuf enum", func(t *testing.T) {
		t.Parallel()

		b := testutil.NewConfigurationBuilder(t).BuildBuilder()
		assert.Equal(t, typepb.Syntax_SYNTAX_PROTO3, testutil.AssertCreatable[typepb.Syntax](t, b))
		assert.Equal(t, structpb.NullValue_NULL_VALUE, testutil.AssertCreatable[structpb.NullValue](t, b))
	})

	t.Run("generic enum override", func(t *testing.T) {
		t.Parallel()

		cfg := testutil.NewConfigurationBuilder(t).Build()
		require.NoError(t, auto.RegisterEnum(cfg, testutil.StatusPending))
		require.NoError(t, cfg.Register(auto.EnumType, func(t reflect.Type) (any, error) {
			return reflect.ValueOf(2).Convert(t).Interface(), nil
		}))

		b := auto.NewBuilder(cfg)
		assert.Equal(t, testutil.StatusShipped, testutil.AssertCreatable[testutil.OrderStatus](t, b))
		assert.Equal(t, typepb.Syntax_SYNTAX_EDITIONS, testutil.AssertCreatable[typepb.Syntax](t, b))
	})
}

func TestBuilder_ProtobufMessages(t *testing.T) {
	t.Parallel()

	b := testutil.NewConfigurationBuilder(t).BuildBuilder()

	ts := testutil.AssertCreatable[*timestamppb.Timestamp](t, b)
	assert.Equal(t, int64(1), ts.GetSeconds())
	assert.Equal(t, int32(1), ts.GetNanos())

	st := testutil.AssertCreatable[*structpb.Struct](t, b)
	require.Len(t, st.GetFields(), 1)
	for key, v := range st.GetFields() {
		assert.NotEmpty(t, key)
		_, isNull := v.GetKind().(*structpb.Value_NullValue)
		assert.True(t, isNull)
	}

	ty := testutil.AssertCreatable[*typepb.Type](t, b)
	assert.Len(t, ty.GetFields(), auto.DefaultSequenceSize)
	assert.Equal(t, typepb.Syntax_SYNTAX_PROTO3, ty.GetSyntax())
}

func TestBuilder_Snapshot(t *testing.T) {
	t.Parallel()

	cfg := testutil.NewConfigurationBuilder(t).WithSequenceSize(2).Build()
	b := auto.NewBuilder(cfg)

	require.NoError(t, cfg.SetSequenceSize(6))

	assert.Len(t, testutil.AssertCreatable[[]int](t, b), 2)
	assert.Equal(t, 2, b.Configuration().SequenceSize())
	assert.Len(t, testutil.AssertCreatable[[]int](t, auto.NewBuilder(cfg)), 6)
}

func TestBuilder_Options(t *testing.T) {
	t.Parallel()

	t.Run("logger records construction failures", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		b := testutil.NewConfigurationBuilder(t).
			WithConstructor(testutil.NewFailingService).
			BuildBuilder(auto.WithLogger(logger))

		_, err := auto.Create[*testutil.Service](b)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "construction failed")
		assert.Contains(t, buf.String(), testutil.ErrConstructor.Error())
	})

	t.Run("custom filler", func(t *testing.T) {
		t.Parallel()

		var filled []reflect.Type
		b := testutil.NewConfigurationBuilder(t).BuildBuilder(
			auto.WithFiller(func(auto.Resolver) auto.Filler {
				return fillerFunc(func(v reflect.Value) error {
					filled = append(filled, v.Type())
					return nil
				})
			}),
		)

		c := testutil.AssertCreatable[*testutil.Customer](t, b)
		testutil.AssertCreatable[*testutil.Customer](t, b)

		assert.Empty(t, c.Name)
		assert.Equal(t, []reflect.Type{reflect.TypeFor[*testutil.Customer]()}, filled)
	})

	t.Run("filler error propagates", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("fill failed")
		b := testutil.NewConfigurationBuilder(t).BuildBuilder(
			auto.WithFiller(func(auto.Resolver) auto.Filler {
				return fillerFunc(func(reflect.Value) error { return boom })
			}),
		)

		testutil.AssertCreateFails[*testutil.Customer](t, b, boom)
	})

	t.Run("custom polymorphic builder", func(t *testing.T) {
		t.Parallel()

		b := testutil.NewConfigurationBuilder(t).BuildBuilder(
			auto.WithPolymorphicBuilder(func(r auto.Resolver) auto.PolymorphicBuilder {
				return polymorphicFunc(func(reflect.Type) (reflect.Value, error) {
					return r.Resolve(reflect.TypeFor[*testutil.MemoryRepository]())
				})
			}),
		)

		repo := testutil.AssertCreatable[testutil.Repository](t, b)
		assert.IsType(t, &testutil.MemoryRepository{}, repo)
	})
}

func TestMustCreate(t *testing.T) {
	t.Parallel()

	b := testutil.NewConfigurationBuilder(t).BuildBuilder()
	assert.NotPanics(t, func() { auto.MustCreate[*testutil.Customer](b) })

	failing := testutil.NewConfigurationBuilder(t).Build()
	require.NoError(t, failing.Register(reflect.TypeFor[string](), func(reflect.Type) (any, error) {
		return nil, testutil.ErrFactory
	}))
	assert.Panics(t, func() { auto.MustCreate[string](auto.NewBuilder(failing)) })
}

type fillerFunc func(reflect.Value) error

func (f fillerFunc) Fill(v reflect.Value) error { return f(v) }

type polymorphicFunc func(reflect.Type) (reflect.Value, error)

func (f polymorphicFunc) Build(t reflect.Type) (reflect.Value, error) { return f(t) }
