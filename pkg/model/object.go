package model

import "github.com/germolinal/simple-sub002/pkg/geometry"

// ObjectKind is the closed catalog of furniture/fixture categories an
// Object may belong to. Purely descriptive metadata: no physics module
// reads or writes an Object's fields, matching the distilled core's
// passing mention of "objects (furniture)" among a Model's collections
// without further elaboration.
type ObjectKind int

const (
	ObjectOther ObjectKind = iota
	ObjectBathtub
	ObjectBed
	ObjectChair
	ObjectDishwasher
	ObjectFireplace
	ObjectOven
	ObjectRefrigerator
	ObjectSink
	ObjectSofa
	ObjectStairs
	ObjectStorage
	ObjectStove
	ObjectTable
	ObjectTelevision
	ObjectToilet
	ObjectWasherDryer
)

// ChairType, SofaType, StorageType and TableType are the sub-category
// enums the Chair/Sofa/Storage/Table variants carry, mirroring the
// original furniture catalog's subtype fields.
type ChairType int

const (
	ChairTypeUnknown ChairType = iota
	ChairTypeArmchair
	ChairTypeDining
	ChairTypeOffice
	ChairTypeStool
)

type ChairArmType int

const (
	ChairArmNone ChairArmType = iota
	ChairArmFixed
	ChairArmAdjustable
)

type ChairBackType int

const (
	ChairBackNone ChairBackType = iota
	ChairBackLow
	ChairBackHigh
)

type ChairLegType int

const (
	ChairLegFour ChairLegType = iota
	ChairLegPedestal
	ChairLegSled
)

type SofaType int

const (
	SofaTypeUnknown SofaType = iota
	SofaTypeTwoSeater
	SofaTypeThreeSeater
	SofaTypeSectional
)

type StorageType int

const (
	StorageTypeUnknown StorageType = iota
	StorageTypeBookshelf
	StorageTypeCabinet
	StorageTypeWardrobe
)

type TableType int

const (
	TableTypeUnknown TableType = iota
	TableTypeDining
	TableTypeCoffee
	TableTypeDesk
)

type TableShape int

const (
	TableShapeRectangular TableShape = iota
	TableShapeRound
	TableShapeOval
)

// ObjectSpec carries the sub-category fields relevant only to the
// ObjectChair/ObjectSofa/ObjectStorage/ObjectTable kinds; zero values for
// other kinds.
type ObjectSpec struct {
	Kind ObjectKind

	ChairCategory ChairType
	ChairArms     ChairArmType
	ChairBack     ChairBackType
	ChairLegs     ChairLegType

	SofaCategory SofaType

	StorageCategory StorageType

	TableCategory TableType
	TableShape    TableShape
}

// Object is a furniture/fixture item placed in a Space, purely descriptive:
// its geometry does not participate in the optical scene or thermal mass.
type Object struct {
	Name          string
	Dimensions    geometry.Vec3 // x,y,z extents
	Location      geometry.Vec3 // center
	Up            geometry.Vec3
	Front         geometry.Vec3
	Specification ObjectSpec
	Target        *Space
}

// NewObject returns an Object with the conventional up=+Z, front=+Y axes
// the original defaults to when unspecified.
func NewObject(name string, dimensions, location geometry.Vec3, spec ObjectSpec) *Object {
	return &Object{
		Name:          name,
		Dimensions:    dimensions,
		Location:      location,
		Up:            geometry.Vec3{X: 0, Y: 0, Z: 1},
		Front:         geometry.Vec3{X: 0, Y: 1, Z: 0},
		Specification: spec,
	}
}
