package cli

import (
	"context"
	"strings"
)

func (a *App) promptNickname(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return GetSimpleText(a.reader, "닉네임", a.out)
}

// Register creates an account and signs in as it.
func (a *App) Register(ctx context.Context, args []string) error {
	nickname, err := a.promptNickname(args)
	if err != nil {
		return err
	}
	pin, err := GetPassword("비밀번호 (숫자 8자리)", a.out)
	if err != nil {
		return err
	}
	confirm, err := GetPassword("비밀번호 확인", a.out)
	if err != nil {
		return err
	}

	r := a.creds.Register(ctx, nickname, pin, confirm)
	if report(a, r, "") {
		a.printf("%s님, 가입을 환영합니다.\n", r.Value().Nickname)
	}
	return r.Err()
}

func (a *App) Login(ctx context.Context, args []string) error {
	nickname, err := a.promptNickname(args)
	if err != nil {
		return err
	}
	pin, err := GetPassword("비밀번호", a.out)
	if err != nil {
		return err
	}

	r := a.creds.Login(ctx, nickname, pin)
	if report(a, r, "") {
		a.printf("%s님, 환영합니다.\n", r.Value().Nickname)
	}
	return r.Err()
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if !a.requireLogin() {
		return nil
	}
	r := a.creds.Logout(ctx)
	report(a, r, "로그아웃되었습니다.")
	return r.Err()
}

// DeleteAccount asks for confirmation, then removes the account and all of
// its entries.
func (a *App) DeleteAccount(ctx context.Context, _ []string) error {
	if !a.requireLogin() {
		return nil
	}
	answer, err := GetSimpleText(a.reader, "계정과 모든 내역을 삭제합니다. 계속하려면 'yes'를 입력하세요.", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		a.println("취소되었습니다.")
		return nil
	}

	r := a.creds.DeleteAccount(ctx)
	report(a, r, "계정이 삭제되었습니다.")
	return r.Err()
}
