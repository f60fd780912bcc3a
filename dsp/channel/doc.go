// Package channel defines the positional channel mask vocabulary used by the
// downmix kernel.
//
// A Mask is a bitset over 24 recognized speaker positions. The order of set
// bits defines the physical sample order of an interleaved frame: the Nth set
// bit (ascending) is the Nth sample slot. Masks with bits outside the
// recognized range are not positional and are rejected by consumers.
package channel
