package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/opencrew/orgcli/internal/api"
	"github.com/opencrew/orgcli/internal/common"
	"github.com/opencrew/orgcli/internal/models"
	"github.com/opencrew/orgcli/internal/store"
)

// mailCooldown throttles mail-sending endpoints locally so a double-tap does
// not burn the backend's rate limit.
const mailCooldown = 60 * time.Second

// storeUser refreshes the user half of the persisted session after a profile
// mutation, keeping 'whoami' in sync without a remote call.
func (a *App) storeUser(ctx context.Context, user *models.User) error {
	us, err := a.stores.Session.Get(ctx)
	if err != nil || us == nil {
		return err
	}
	us.User = *user
	if err := a.stores.Session.Store(ctx, us); err != nil {
		return err
	}
	a.userEmail = user.PrimaryEmail
	return nil
}

// checkCooldown reports whether the mail operation behind key may run now,
// printing the remaining wait otherwise.
func (a *App) checkCooldown(ctx context.Context, key string) (bool, error) {
	deadline, active, err := a.stores.Timeouts.Active(ctx, key, timeNow())
	if err != nil {
		return false, err
	}
	if active {
		printlnFn(fmt.Sprintf("Please wait %s before requesting another mail.",
			time.Until(deadline).Round(time.Second)))
		return false, nil
	}
	return true, nil
}

// UpdateAccount changes the presentation name and preferred region. Requires
// a recent secure login.
func (a *App) UpdateAccount(ctx context.Context) error {
	us, err := a.stores.Session.Get(ctx)
	if err != nil {
		return err
	}
	if us == nil {
		printlnFn("Not logged in.")
		return nil
	}

	name, err := getSimpleText(a.reader,
		fmt.Sprintf("Enter your name [%s]", us.User.PresentationName), os.Stdout)
	if err != nil {
		return err
	}
	if name == "" {
		name = us.User.PresentationName
	}

	region, err := getSimpleText(a.reader,
		fmt.Sprintf("Enter preferred region [%s]", us.User.PreferredRegion), os.Stdout)
	if err != nil {
		return err
	}
	if region == "" {
		region = us.User.PreferredRegion
	}

	if ok, err := a.requireStepUp(ctx, models.RoleSTLSecure); err != nil || !ok {
		return err
	}

	user, err := a.api.UpdateUserData(ctx, api.UpdateUserDataRequest{
		PresentationName: name,
		PreferredRegion:  region,
	})
	if err != nil {
		return err
	}
	if err := a.storeUser(ctx, user); err != nil {
		return err
	}
	printlnFn("Account updated.")
	return nil
}

// Passwd changes the password. Requires the strongest step-up tier on top of
// the current password, matching the backend's double check.
func (a *App) Passwd(ctx context.Context) error {
	if ok, err := a.requireStepUp(ctx, models.RoleSTLMostSecure); err != nil || !ok {
		return err
	}

	current, err := getPassword("Current password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	newPw, err := getPassword("New password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPw)

	repeat, err := getPassword("Repeat new password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(repeat)

	if string(newPw) != string(repeat) {
		printlnFn("Passwords do not match.")
		return nil
	}

	if _, err := a.api.UpdatePassword(ctx, api.UpdatePasswordRequest{
		CurrentPassword: string(current),
		NewPassword:     string(newPw),
	}); err != nil {
		return err
	}
	printlnFn("Password changed.")
	return nil
}

// ChangeEmail requests a primary email change. The backend mails a token to
// the new address; 'update-email' applies it.
func (a *App) ChangeEmail(ctx context.Context) error {
	if ok, err := a.checkCooldown(ctx, store.TimeoutSendEmailChangeMail); err != nil || !ok {
		return err
	}

	newEmail, err := getSimpleText(a.reader, "Enter new email", os.Stdout)
	if err != nil {
		return err
	}

	if ok, err := a.requireStepUp(ctx, models.RoleSTLMostSecure); err != nil || !ok {
		return err
	}

	if err := a.api.SendPrimaryEmailChangeMail(ctx, newEmail, mailLanguage); err != nil {
		return err
	}
	if err := a.stores.Timeouts.Put(ctx, store.TimeoutSendEmailChangeMail, timeNow().Add(mailCooldown)); err != nil {
		return err
	}
	printlnFn("Check the new address for a mail, then run 'update-email'.")
	return nil
}

// UpdateEmail applies an email change using the token from the change mail.
func (a *App) UpdateEmail(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Enter the token from the mail", os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.api.UpdatePrimaryEmailWithToken(ctx, token)
	if err != nil {
		return err
	}
	if err := a.storeUser(ctx, user); err != nil {
		return err
	}
	printlnFn("Email updated to", user.PrimaryEmail)
	return nil
}

// ConfirmEmail confirms the primary email with the token from the
// confirmation mail. Works without being logged in.
func (a *App) ConfirmEmail(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Enter the token from the mail", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.ConfirmPrimaryEmail(ctx, token); err != nil {
		return err
	}
	printlnFn("Email confirmed.")
	return nil
}

// SendConfirmationMail resends the primary email confirmation mail.
func (a *App) SendConfirmationMail(ctx context.Context) error {
	if ok, err := a.checkCooldown(ctx, store.TimeoutSendConfirmationMail); err != nil || !ok {
		return err
	}

	if err := a.api.SendPrimaryEmailConfirmationMail(ctx, mailLanguage); err != nil {
		return err
	}
	if err := a.stores.Timeouts.Put(ctx, store.TimeoutSendConfirmationMail, timeNow().Add(mailCooldown)); err != nil {
		return err
	}
	printlnFn("Confirmation mail sent.")
	return nil
}

// RecoverPassword requests a password recovery mail. Works without being
// logged in; the backend responds identically whether or not the address
// exists.
func (a *App) RecoverPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.SendPasswordRecoveryMail(ctx, email, mailLanguage); err != nil {
		return err
	}
	printlnFn("If the address is registered, a recovery mail is on its way.")
	return nil
}
