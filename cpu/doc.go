// Package cpu implements the processor and assembler for the AISA system.
//
// The processor has eight 16-bit arithmetic registers (A-H), four 32-bit
// address registers (J, K, L and the program counter P), four condition
// flags (gt, eq, ls, ov), and a flat memory of 16-bit words. Address
// registers are reachable as a whole through a 2-bit wide code, or one
// 16-bit half at a time through thin codes 8-15.
//
// The assembler compiles line oriented mnemonic source, organised into named
// sections, into the linear word image the processor executes.
package cpu
