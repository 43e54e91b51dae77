package models

// String methods for custom string types.
// These are required for toon serialization, which uses fmt.Stringer.

// TargetType
func (t TargetType) String() string { return string(t) }

// ComplexityLevel
func (c ComplexityLevel) String() string { return string(c) }

// FactorImpact
func (f FactorImpact) String() string { return string(f) }

// SymbolType
func (s SymbolType) String() string { return string(s) }

// Visibility
func (v Visibility) String() string { return string(v) }

// ValidationStep
func (v ValidationStep) String() string { return string(v) }

// Severity
func (s Severity) String() string { return string(s) }
