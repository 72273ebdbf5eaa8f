// Package model contains the domain types exchanged between the form, the
// cost service and the result views.
package model

// Pattern is the interaction style of the integration being onboarded.
type Pattern string

const (
	PatternSynchronous  Pattern = "Synchronous"
	PatternAsynchronous Pattern = "Asynchronous"
	PatternEventBased   Pattern = "Event-based"
)

// Patterns lists every pattern in form order.
var Patterns = []Pattern{PatternSynchronous, PatternAsynchronous, PatternEventBased}

// Complexity grades integration, operational and mapping effort.
type Complexity string

const (
	ComplexitySimple  Complexity = "Simple"
	ComplexityMedium  Complexity = "Medium"
	ComplexityComplex Complexity = "Complex"
)

// Complexities lists every complexity in form order.
var Complexities = []Complexity{ComplexitySimple, ComplexityMedium, ComplexityComplex}

// InfraModel is the hosting model of the integration runtime.
type InfraModel string

const (
	InfraModelShared    InfraModel = "Shared"
	InfraModelDedicated InfraModel = "Dedicated"
)

// InfraModels lists every infrastructure model in form order.
var InfraModels = []InfraModel{InfraModelShared, InfraModelDedicated}

// String returns the wire value.
func (p Pattern) String() string { return string(p) }

// String returns the wire value.
func (c Complexity) String() string { return string(c) }

// String returns the wire value.
func (m InfraModel) String() string { return string(m) }
