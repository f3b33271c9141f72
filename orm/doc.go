/*
Package orm provides an easy to use db wrapper

Models are plain Go structures that know how to validate themselves.
They are encoded with go-amino and stored under a bucket specific
prefix:

	<bucket>:<key>

A ModelBucket may maintain any number of secondary indexes. An index
stores the set of primary keys that produce the same index value under

	_i.<bucket>_<index>:<value>

Sequences are counters stored under _s.<bucket>:<name> and are used to
produce monotonically increasing keys.
*/
package orm
