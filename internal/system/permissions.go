package system

import (
	"VaultSync/internal/logger"
	"context"
	"os"
	"runtime"
)

// MatchPermissions gives path the permission bits of info and, where the
// platform allows it, the same owner and group. It is used so that a file
// replacing another by rename keeps the original's access rights.
func MatchPermissions(ctx context.Context, path string, info os.FileInfo) error {
	if path == "" || info == nil {
		return nil
	}

	if err := os.Chmod(path, info.Mode().Perm()); err != nil {
		return err
	}
	logger.Debug(ctx, "Set mode {{_Var_}}%04o{{|-|}} on '{{_File_}}%s{{|-|}}'.", info.Mode().Perm(), path)

	if runtime.GOOS == "windows" {
		return nil
	}

	uid, gid, ok := ownerOf(info)
	if !ok || (uid == os.Getuid() && gid == os.Getgid()) {
		return nil
	}
	// Only root may give files away; other users keep their own ownership.
	if os.Geteuid() != 0 {
		logger.Warn(ctx, "'{{_File_}}%s{{|-|}}' was owned by %d:%d; the rewritten file is owned by the current user.", path, uid, gid)
		return nil
	}
	logger.Info(ctx, "Taking ownership of '{{_File_}}%s{{|-|}}' for user '%d' and group '%d'.", path, uid, gid)
	return os.Lchown(path, uid, gid)
}
