package analyze

import (
	"fmt"

	"fromgen/internal/diagnostic"
)

// validateUnion reports duplicate payload types and constructor-name
// conflicts across the variants of a single union.
//
// A payload type can key only one conversion, so two variants wrapping the
// same type would emit constructors with identical names. Detecting this
// here keeps the failure a clear diagnostic instead of an unrelated-looking
// build break in the generated file.
func (a *Analyzer) validateUnion(u *Union) {
	byPayload := make(map[string]string, len(u.Variants))
	byCtor := make(map[string]string, len(u.Variants))

	for i := range u.Variants {
		v := &u.Variants[i]

		key := v.Payload.Key()
		if prev, ok := byPayload[key]; ok {
			a.diags.AddError(diagnostic.CodeDupPayload,
				fmt.Sprintf("payload type %s is already wrapped by variant %s", key, prev),
				u.Name, v.Name, v.Pos)

			continue
		}

		byPayload[key] = v.Name

		ctor := v.ConstructorName(u.Name)
		if prev, ok := byCtor[ctor]; ok {
			a.diags.AddError(diagnostic.CodeCtorConflict,
				fmt.Sprintf("constructor %s is already generated for variant %s", ctor, prev),
				u.Name, v.Name, v.Pos)

			continue
		}

		byCtor[ctor] = v.Name
	}
}
