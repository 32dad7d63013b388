// Package generator turns planned filesystem changes into disk writes.
//
// Callers describe work as a list of Operations (MkdirOp, WriteFileOp) and
// hand it to Execute, which validates everything before touching the disk.
// A target that already exists is skipped with a notice unless Force is set;
// any other validation failure aborts the run before the first write.
//
// There is no rollback. An I/O error halfway through leaves whatever was
// already written in place, and the returned Report says how far it got.
//
// Renderer fills the small text templates shipped with service definitions.
package generator
