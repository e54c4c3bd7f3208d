package bot

import (
	"github.com/diamondburned/arikawa/v3/utils/httputil/httpdriver"
	"github.com/jamesatjaminit/Jam-Bot/stats"
)

// onResponse logs a request's status code and adds it to stats
func (bot *Bot) onResponse(req httpdriver.Request, resp httpdriver.Response) error {
	method := ""

	v, ok := req.(*httpdriver.DefaultRequest)
	if ok {
		method = v.Method
		if method == "" {
			method = "GET"
		}
	}

	if resp == nil {
		return nil
	}

	if _, ok := resp.(*httpdriver.DefaultResponse); !ok {
		return nil
	}

	bot.Log.Debugf("%v %v => %v", method, stats.LoggingName(req.GetPath()), resp.GetStatus())

	bot.Stats.IncRequest(method, req.GetPath(), resp.GetStatus())
	return nil
}
