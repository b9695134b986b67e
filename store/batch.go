package store

type batchOp struct {
	key    string
	value  []byte
	delete bool
}

// Batch accumulates put and delete operations for a single atomic write.
// The zero value is ready to use.
type Batch struct {
	ops []batchOp
}

// Put stages an upsert of key. Staging the same key twice keeps both ops;
// the later one wins when the batch is applied.
func (b *Batch) Put(key string, value []byte) {
	b.ops = append(b.ops, batchOp{key: key, value: value})
}

// Delete stages a removal of key. Deleting an absent key inside a batch is
// a no-op, unlike KV.Delete.
func (b *Batch) Delete(key string) {
	b.ops = append(b.ops, batchOp{key: key, delete: true})
}

// Len reports the number of staged operations.
func (b *Batch) Len() int { return len(b.ops) }
