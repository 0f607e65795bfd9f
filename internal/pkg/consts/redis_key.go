package consts

const (
	OrphanTagCleanupLock = "folio:lock:orphan_tag_cleanup"
)
