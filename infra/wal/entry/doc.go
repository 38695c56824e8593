// Package entry is the mutation journal: every catalog or ledger
// mutation is framed, checksummed and appended here before it is
// applied in memory.
//
// Frame layout:
//
//	[type:1][seq:8][time:8][len:4][payload][crc:4]
//
// The CRC covers header and payload. Segments rotate by size and are
// named segment-NNNNNN.wal.
package entry
