package cli

import (
	"context"

	"github.com/dmitrijs2005/gophledger/internal/client/export"
	"github.com/dmitrijs2005/gophledger/internal/client/memotext"
)

const memoUsage = "Usage: memo new | list | show <id> | edit <id> | delete <id> | export | import <file>"

// editMemo reads new content for id and drops the memo if it ends up blank.
func (a *App) editMemo(ctx context.Context, id string) error {
	content, err := GetMultiline(a.reader, "내용 (첫 줄이 제목이 됩니다)", a.out)
	if err != nil {
		return err
	}
	if content != "" {
		r := a.memos.Update(ctx, id, content)
		if !report(a, r, "") {
			return r.Err()
		}
	}

	r := a.memos.Discard(ctx, id)
	if !r.Ok() {
		a.println(r.Message())
		return r.Err()
	}
	if r.Value() {
		a.println("빈 메모는 저장하지 않았습니다.")
		return nil
	}
	a.println("저장되었습니다.")
	return nil
}

// Memo dispatches the memo subcommands. Memos are local to the device and
// do not need a session.
func (a *App) Memo(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println(memoUsage)
		return nil
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "new":
		r := a.memos.Create(ctx)
		if !report(a, r, "") {
			return r.Err()
		}
		return a.editMemo(ctx, r.Value().ID)

	case "list", "l":
		items := a.memos.Items()
		if len(items) == 0 {
			a.println("메모가 없습니다.")
			return nil
		}
		t := now()
		for _, m := range items {
			a.printf("%s  %s  [%s]\n    %s\n", m.ID, memotext.Title(m.Content), memotext.FormatDate(m.UpdatedAt, t), memotext.Preview(m.Content))
		}
		return nil

	case "show":
		if len(rest) != 1 {
			break
		}
		m, ok := a.memos.Get(rest[0])
		if !ok {
			a.println("메모를 찾을 수 없습니다.")
			return nil
		}
		a.println(m.Content)
		return nil

	case "edit":
		if len(rest) != 1 {
			break
		}
		m, ok := a.memos.Get(rest[0])
		if !ok {
			a.println("메모를 찾을 수 없습니다.")
			return nil
		}
		a.println(m.Content)
		return a.editMemo(ctx, m.ID)

	case "delete":
		if len(rest) != 1 {
			break
		}
		r := a.memos.Delete(ctx, rest[0])
		report(a, r, "삭제되었습니다.")
		return r.Err()

	case "export":
		r := a.memos.Export()
		if !report(a, r, "") {
			return r.Err()
		}
		return a.writeExport(export.BackupFilename(export.DomainMemo, now()), r.Value())

	case "import":
		if len(rest) != 1 {
			break
		}
		data, err := readFile(rest[0])
		if err != nil {
			a.println("파일을 읽을 수 없습니다.")
			return err
		}
		return a.importMemos(ctx, data)
	}

	a.println(memoUsage)
	return nil
}
