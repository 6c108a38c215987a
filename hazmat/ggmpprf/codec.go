package ggmpprf

import "encoding/binary"

// Wire format (all integers are 64-bit unsigned, big-endian):
//
//	tagLen : u64 BE
//	keyLen : u64 BE
//	puncs  : u64 BE
//	nNodes : u64 BE
//	repeat nNodes times:
//	    prefixLen : u64 BE
//	    prefix    : prefixLen bytes ('0'/'1')
//	    value     : keyLen/8 bytes
//
// Earlier ports of this format reconstructed the header integers byte-wise
// in little-endian order on read while writing them big-endian — an
// inconsistency that made serialized keys non-portable across readers. This
// codec is big-endian on both write and read.

func serializeKey(k *Key) []byte {
	buf := make([]byte, 0, 32+len(k.Nodes)*(8+k.KeyLen/8))
	buf = appendUint64(buf, uint64(k.TagLen))
	buf = appendUint64(buf, uint64(k.KeyLen))
	buf = appendUint64(buf, uint64(k.Puncs))
	buf = appendUint64(buf, uint64(len(k.Nodes)))
	for _, n := range k.Nodes {
		buf = appendUint64(buf, uint64(len(n.Prefix())))
		buf = append(buf, n.Prefix()...)
		buf = append(buf, n.Value()...)
	}
	return buf
}

func deserializeKey(data []byte) (*Key, error) {
	var off int

	tagLen, ok := readUint64(data, &off)
	if !ok {
		return nil, ErrDeserialization
	}
	keyLen, ok := readUint64(data, &off)
	if !ok {
		return nil, ErrDeserialization
	}
	puncs, ok := readUint64(data, &off)
	if !ok {
		return nil, ErrDeserialization
	}
	nNodes, ok := readUint64(data, &off)
	if !ok {
		return nil, ErrDeserialization
	}
	if keyLen == 0 || keyLen%8 != 0 {
		return nil, ErrDeserialization
	}

	valueLen := int(keyLen / 8)
	// Each node consumes at least 8 bytes (its prefixLen field), so the
	// remaining input bounds how many nodes a well-formed buffer could
	// possibly declare; this keeps a maliciously large nNodes from forcing
	// a huge allocation before the truncation check below ever runs.
	maxNodes := uint64(len(data)-off) / 8
	capHint := nNodes
	if capHint > maxNodes {
		capHint = maxNodes
	}
	nodes := make([]SecretRoot, 0, capHint)

	for i := uint64(0); i < nNodes; i++ {
		prefixLen, ok := readUint64(data, &off)
		if !ok {
			return nil, ErrDeserialization
		}
		prefix, ok := readBytes(data, &off, int(prefixLen))
		if !ok {
			return nil, ErrDeserialization
		}
		value, ok := readBytes(data, &off, valueLen)
		if !ok {
			return nil, ErrDeserialization
		}
		nodes = append(nodes, NewSecretRoot(string(prefix), value))
	}

	if off != len(data) {
		return nil, ErrDeserialization
	}

	return &Key{KeyLen: int(keyLen), TagLen: int(tagLen), Puncs: int(puncs), Nodes: nodes}, nil
}

func appendUint64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

func readUint64(data []byte, off *int) (uint64, bool) {
	if len(data) < *off+8 {
		return 0, false
	}
	v := binary.BigEndian.Uint64(data[*off:])
	*off += 8
	return v, true
}

func readBytes(data []byte, off *int, n int) ([]byte, bool) {
	if n < 0 || len(data) < *off+n {
		return nil, false
	}
	b := data[*off : *off+n]
	*off += n
	return b, true
}
