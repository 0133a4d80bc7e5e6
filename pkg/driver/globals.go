package driver

import (
	"math"

	"tyflow/analyzer-go/pkg/analyzer"
	"tyflow/analyzer-go/pkg/ty"
)

// SeedHostGlobals installs the ambient bindings scripts lean on: console,
// Math, JSON, a few constructors and conversion functions. The shapes are
// shallow; anything not modeled reads as any or unknown.
func SeedHostGlobals(an *analyzer.Analyzer) {
	arena := an.Arena()

	sink := func(name string) ty.Ty {
		return arena.NewFunction(name, []ty.Ty{ty.Any}, ty.Undefined)
	}
	an.DefineGlobal("console", arena.NewNamespace("console", map[string]ty.Ty{
		"log":   sink("log"),
		"info":  sink("info"),
		"warn":  sink("warn"),
		"error": sink("error"),
		"debug": sink("debug"),
	}))

	numeric := func(name string) ty.Ty {
		return arena.NewFunction(name, []ty.Ty{ty.Number}, ty.Number)
	}
	an.DefineGlobal("Math", arena.NewNamespace("Math", map[string]ty.Ty{
		"abs":    numeric("abs"),
		"ceil":   numeric("ceil"),
		"floor":  numeric("floor"),
		"round":  numeric("round"),
		"sqrt":   numeric("sqrt"),
		"trunc":  numeric("trunc"),
		"max":    arena.NewFunction("max", []ty.Ty{ty.Number, ty.Number}, ty.Number),
		"min":    arena.NewFunction("min", []ty.Ty{ty.Number, ty.Number}, ty.Number),
		"pow":    arena.NewFunction("pow", []ty.Ty{ty.Number, ty.Number}, ty.Number),
		"random": arena.NewFunction("random", nil, ty.Number),
		"PI":     ty.NumberLiteral{Value: math.Pi},
		"E":      ty.NumberLiteral{Value: math.E},
	}))

	an.DefineGlobal("JSON", arena.NewNamespace("JSON", map[string]ty.Ty{
		"parse":     arena.NewFunction("parse", []ty.Ty{ty.String}, ty.Any),
		"stringify": arena.NewFunction("stringify", []ty.Ty{ty.Any}, ty.String),
	}))

	dateInstance := arena.NewObject([]ty.PropertyDef{
		{Key: ty.NameKey("getTime"), Value: arena.NewFunction("getTime", nil, ty.Number)},
		{Key: ty.NameKey("getFullYear"), Value: arena.NewFunction("getFullYear", nil, ty.Number)},
		{Key: ty.NameKey("toISOString"), Value: arena.NewFunction("toISOString", nil, ty.String)},
	})
	an.DefineGlobal("Date", arena.NewConstructor("Date", []ty.Ty{ty.Any}, dateInstance))

	errorInstance := arena.NewObject([]ty.PropertyDef{
		{Key: ty.NameKey("name"), Value: ty.String},
		{Key: ty.NameKey("message"), Value: ty.String},
		{Key: ty.NameKey("stack"), Value: ty.String, Optional: true},
	})
	an.DefineGlobal("Error", arena.NewConstructor("Error", []ty.Ty{ty.String}, errorInstance))
	an.DefineGlobal("TypeError", arena.NewConstructor("TypeError", []ty.Ty{ty.String}, errorInstance))
	an.DefineGlobal("RangeError", arena.NewConstructor("RangeError", []ty.Ty{ty.String}, errorInstance))

	an.DefineGlobal("String", arena.NewFunction("String", []ty.Ty{ty.Any}, ty.String))
	an.DefineGlobal("Number", arena.NewFunction("Number", []ty.Ty{ty.Any}, ty.Number))
	an.DefineGlobal("Boolean", arena.NewFunction("Boolean", []ty.Ty{ty.Any}, ty.Boolean))
	an.DefineGlobal("Symbol", arena.NewFunction("Symbol", []ty.Ty{ty.String}, ty.Symbol))
	an.DefineGlobal("parseInt", arena.NewFunction("parseInt", []ty.Ty{ty.String, ty.Number}, ty.Number))
	an.DefineGlobal("parseFloat", arena.NewFunction("parseFloat", []ty.Ty{ty.String}, ty.Number))
	an.DefineGlobal("isNaN", arena.NewFunction("isNaN", []ty.Ty{ty.Any}, ty.Boolean))
	an.DefineGlobal("isFinite", arena.NewFunction("isFinite", []ty.Ty{ty.Any}, ty.Boolean))

	an.DefineGlobal("NaN", ty.Number)
	an.DefineGlobal("Infinity", ty.Number)
	an.DefineGlobal("globalThis", ty.Unknown)
}
