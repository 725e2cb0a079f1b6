// Package webhook receives GitHub webhook deliveries and hands the decoded
// events to typed handlers.
//
//	rcv := webhook.NewReceiver(
//	    webhook.WithSecret(os.Getenv("WEBHOOK_SECRET")),
//	    webhook.WithLogger(logger),
//	)
//	rcv.OnPullRequest(func(ctx context.Context, d webhook.Delivery, ev *gitapi.PullRequestEvent) error {
//	    if ev.Action != gitapi.PullRequestOpened {
//	        return nil
//	    }
//	    _, err := client.IssueComments.Create(ctx, gitapi.Repo(ev.Repository.Owner.Login, ev.Repository.Name),
//	        ev.Number, gitapi.CreateIssueComment{Body: "Thanks!"})
//	    return err
//	})
//	http.Handle("/webhook", rcv)
//
// Each delivery gets a server span, a log line and a count in the
// webhook.deliveries metric. Handlers run on the request goroutine, so
// GitHub's delivery timeout applies to them.
package webhook
