package rt

// Set and Table are hash-bucketed: entries with equal Hash share a bucket,
// and membership within a bucket is resolved with Equal. This mirrors the
// split the host needs anyway, since Hash alone cannot distinguish
// colliding-but-unequal values.

func setLen(s *setObj) int {
	n := 0
	for _, bucket := range s.entries {
		n += len(bucket)
	}
	return n
}

func setHasRaw(s *setObj, item Value) bool {
	for _, v := range s.entries[Hash(item)] {
		if Equal(v, item) {
			return true
		}
	}
	return false
}

// SetAdd inserts item, returning false if it was already present.
func SetAdd(v Value, item Value) bool {
	s := v.obj.(*setObj)
	h := Hash(item)
	if setHasRaw(s, item) {
		return false
	}
	s.entries[h] = append(s.entries[h], item)
	return true
}

// SetHas reports whether item is a member of the set.
func SetHas(v Value, item Value) bool {
	return setHasRaw(v.obj.(*setObj), item)
}

// SetRemove deletes item, returning false if it was absent.
func SetRemove(v Value, item Value) bool {
	s := v.obj.(*setObj)
	h := Hash(item)
	bucket := s.entries[h]
	for i, cand := range bucket {
		if Equal(cand, item) {
			s.entries[h] = append(bucket[:i], bucket[i+1:]...)
			if len(s.entries[h]) == 0 {
				delete(s.entries, h)
			}
			return true
		}
	}
	return false
}

// SetLen reports the number of elements in the set.
func SetLen(v Value) int { return setLen(v.obj.(*setObj)) }

// EachSetEntry visits every element; fn returning false stops iteration.
func EachSetEntry(v Value, fn func(item Value) bool) {
	for _, bucket := range v.obj.(*setObj).entries {
		for _, item := range bucket {
			if !fn(item) {
				return
			}
		}
	}
}

func tableLen(t *tableObj) int {
	n := 0
	for _, bucket := range t.keys {
		n += len(bucket)
	}
	return n
}

func tableGetRaw(t *tableObj, key Value) (Value, bool) {
	h := Hash(key)
	keys := t.keys[h]
	for i, k := range keys {
		if Equal(k, key) {
			return t.values[h][i], true
		}
	}
	return Value{}, false
}

// TableSet inserts or replaces the value associated with key.
func TableSet(v Value, key, val Value) {
	t := v.obj.(*tableObj)
	h := Hash(key)
	keys := t.keys[h]
	for i, k := range keys {
		if Equal(k, key) {
			t.values[h][i] = val
			return
		}
	}
	t.keys[h] = append(t.keys[h], key)
	t.values[h] = append(t.values[h], val)
}

// TableGet looks up key.
func TableGet(v Value, key Value) (Value, bool) {
	return tableGetRaw(v.obj.(*tableObj), key)
}

// TableHas reports whether key is present.
func TableHas(v Value, key Value) bool {
	_, ok := TableGet(v, key)
	return ok
}

// TableDelete removes key, returning false if it was absent.
func TableDelete(v Value, key Value) bool {
	t := v.obj.(*tableObj)
	h := Hash(key)
	keys := t.keys[h]
	for i, k := range keys {
		if Equal(k, key) {
			t.keys[h] = append(keys[:i], keys[i+1:]...)
			t.values[h] = append(t.values[h][:i], t.values[h][i+1:]...)
			if len(t.keys[h]) == 0 {
				delete(t.keys, h)
				delete(t.values, h)
			}
			return true
		}
	}
	return false
}

// TableLen reports the number of entries in the table.
func TableLen(v Value) int { return tableLen(v.obj.(*tableObj)) }

// EachTableEntry visits every (key, value) pair; fn returning false stops
// iteration.
func EachTableEntry(v Value, fn func(key, val Value) bool) {
	t := v.obj.(*tableObj)
	for h, keys := range t.keys {
		values := t.values[h]
		for i, k := range keys {
			if !fn(k, values[i]) {
				return
			}
		}
	}
}
