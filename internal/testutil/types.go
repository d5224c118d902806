package testutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common test errors
var (
	ErrTest        = errors.New("test error")
	ErrConstructor = errors.New("constructor error")
	ErrFactory     = errors.New("factory error")
)

// Address is a plain value struct.
type Address struct {
	Street string
	City   string
	Zip    int
}

// Customer exercises scalar, pointer, slice, map and value struct members.
type Customer struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Age       int
	Active    bool
	Balance   float64
	CreatedAt time.Time
	Home      Address
	Work      *Address
	Tags      []string
	Scores    map[string]int
	Notes     string `auto:"-"`
	internal  string
}

// Internal exposes the unexported field for assertions.
func (c *Customer) Internal() string { return c.internal }

// Order references its customer and items.
type Order struct {
	ID       string
	Customer *Customer
	Lines    []*OrderLine
	Status   OrderStatus
}

// OrderLine is a single order line.
type OrderLine struct {
	SKU      string
	Quantity int
}

// OrderStatus is an enum declared through RegisterEnum.
type OrderStatus int

const (
	StatusUnknown OrderStatus = iota
	StatusPending
	StatusShipped
)

func (s OrderStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusShipped:
		return "shipped"
	}
	return "unknown"
}

// Parent and Child reference each other.
type Parent struct {
	Name  string
	Child *Child
}

type Child struct {
	Name   string
	Parent *Parent
}

// Repository is an interface implemented by MemoryRepository.
type Repository interface {
	Find(id string) (*Customer, error)
}

// MemoryRepository implements Repository.
type MemoryRepository struct {
	Name string
}

func (r *MemoryRepository) Find(id string) (*Customer, error) {
	return &Customer{Name: id}, nil
}

// NewMemoryRepository constructs a MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{Name: "memory"}
}

// NewRepository returns a Repository backed by a MemoryRepository.
func NewRepository() Repository {
	return &MemoryRepository{Name: "from interface constructor"}
}

// Clock is an interface without any implementation in this package.
type Clock interface {
	Now() time.Time
}

// Service is built through constructors only.
type Service struct {
	Repo    Repository
	Ctx     context.Context
	Port    int
	Host    string
	Timeout time.Duration
	ctorArg string
}

// CtorArg reports which constructor built the service.
func (s *Service) CtorArg() string { return s.ctorArg }

// NewService takes one non-primitive argument.
func NewService(repo Repository) *Service {
	return &Service{Repo: repo, ctorArg: "repo"}
}

// NewServiceWithEndpoint takes primitive arguments only.
func NewServiceWithEndpoint(host string, port int) *Service {
	return &Service{Host: host, Port: port, ctorArg: fmt.Sprintf("%s:%d", host, port)}
}

// NewFailingService always fails.
func NewFailingService() (*Service, error) {
	return nil, ErrConstructor
}
