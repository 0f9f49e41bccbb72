package rt

var instructionKindNames = map[InstructionKind]string{
	InstrNoOp:             "NoOp",
	InstrConstant:         "Constant",
	InstrFunctionCall:     "FunctionCall",
	InstrDispatch:         "Dispatch",
	InstrSequence:         "Sequence",
	InstrVariableGet:      "VariableGet",
	InstrVariableGetLazy:  "VariableGetLazy",
	InstrVariableSet:      "VariableSet",
	InstrFromImportedStack: "FromImportedStack",
	InstrSetAddress:       "SetAddress",
	InstrArmStack:         "ArmStack",
	InstrIf:               "If",
	InstrWhile:            "While",
	InstrDoUntil:          "DoUntil",
	InstrEmitEffect:       "EmitEffect",
	InstrHandleEffect:     "HandleEffect",
	InstrBuildTuple:       "BuildTuple",
	InstrBuildList:        "BuildList",
	InstrBuildSet:         "BuildSet",
	InstrBuildTable:       "BuildTable",
	InstrBuildComposite:   "BuildComposite",

	InstrAddInt:   "AddInt",
	InstrSubInt:   "SubInt",
	InstrMulInt:   "MulInt",
	InstrDivInt:   "DivInt",
	InstrModInt:   "ModInt",
	InstrAddUint:  "AddUint",
	InstrSubUint:  "SubUint",
	InstrMulUint:  "MulUint",
	InstrDivUint:  "DivUint",
	InstrModUint:  "ModUint",
	InstrAddFloat: "AddFloat",
	InstrSubFloat: "SubFloat",
	InstrMulFloat: "MulFloat",
	InstrDivFloat: "DivFloat",
	InstrNegInt:   "NegInt",
	InstrNegUint:  "NegUint",
	InstrNegFloat: "NegFloat",
	InstrToFloat:  "ToFloat",

	InstrAddDyn:    "AddDyn",
	InstrSubDyn:    "SubDyn",
	InstrMulDyn:    "MulDyn",
	InstrDivIntDyn: "DivIntDyn",
	InstrModDyn:    "ModDyn",
	InstrNegDyn:    "NegDyn",

	InstrCompareEq:  "CompareEq",
	InstrCompareNeq: "CompareNeq",
	InstrCompareLt:  "CompareLt",
	InstrCompareLe:  "CompareLe",
	InstrCompareGt:  "CompareGt",
	InstrCompareGe:  "CompareGe",
	InstrLogicalNot: "LogicalNot",
}

func (k InstructionKind) String() string {
	if name, ok := instructionKindNames[k]; ok {
		return name
	}
	return "Unknown"
}
