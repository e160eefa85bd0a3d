// Copyright 2016-2020, Pulumi Corporation.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package types

import (
	"github.com/pulumi/dynexpr/pkg/compiler/symbols"
	"github.com/pulumi/dynexpr/pkg/util/contract"
)

// numericKinds orders the rows and columns of numericTable.
var numericKinds = []*symbols.Type{
	symbols.Char,
	symbols.Int8, symbols.Uint8, symbols.Int16, symbols.Uint16,
	symbols.Int32, symbols.Uint32, symbols.Int64, symbols.Uint64,
	symbols.Float32, symbols.Float64,
}

// numericTable holds the natural conversions among numeric kinds.  Rows are sources and columns destinations, both in
// numericKinds order:
//
//	= identity
//	I implicit widening
//	X explicit only
var numericTable = []string{
	//c i8 u8 i16 u16 i32 u32 i64 u64 f32 f64
	"=XXXIIIIIII", // char
	"X=XIXIXIXII", // int8
	"XX=IIIIIIII", // uint8
	"XXX=XIXIXII", // int16
	"XXXX=IIIIII", // uint16
	"XXXXX=XIXII", // int32
	"XXXXXX=IIII", // uint32
	"XXXXXXX=XII", // int64
	"XXXXXXXX=II", // uint64
	"XXXXXXXXX=I", // float32
	"XXXXXXXXXX=", // float64
}

// numericQuality maps a cell of numericTable to its conversion quality.
func numericQuality(cell byte) float64 {
	switch cell {
	case '=':
		return QualitySameType
	case 'I':
		return QualityNumberExpansion
	case 'X':
		return QualityExplicitConversion
	default:
		contract.Failf("unrecognized numeric conversion cell '%c'", cell)
		return QualityNoConversion
	}
}
