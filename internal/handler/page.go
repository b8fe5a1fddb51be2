package handler

import "html/template"

// pageData feeds the page templates. The HTML fields come from the view
// package, which has already escaped every interpolated value.
type pageData struct {
	Activities template.HTML
	Options    template.HTML
	Banner     template.HTML
	Email      string
	Alerts     []string
}

type confirmData struct {
	Activity string
	Email    string
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Extracurricular Activities</title>
</head>
<body>
<header><h1>Extracurricular Activities</h1></header>
<main>
{{range .Alerts}}<div class="alert" role="alert">{{.}}</div>
{{end}}<section id="activities-container">
<h3>Available Activities</h3>
<div id="activities-list">{{.Activities}}</div>
</section>
<section id="signup-container">
<h3>Sign Up for an Activity</h3>
<form id="signup-form" method="post" action="/signup">
<div class="form-group">
<label for="email">Student Email:</label>
<input type="email" id="email" name="email" required placeholder="your-email@school.edu" value="{{.Email}}">
</div>
<div class="form-group">
<label for="activity">Select Activity:</label>
<select id="activity" name="activity" required>{{.Options}}</select>
</div>
<button type="submit">Sign Up</button>
</form>
<div id="message-slot">{{.Banner}}</div>
</section>
</main>
<script>
(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  ws.onmessage = function (ev) {
    var data = JSON.parse(ev.data);
    document.getElementById("activities-list").innerHTML = data.activities;
    document.getElementById("activity").innerHTML = data.options;
    document.getElementById("message-slot").innerHTML = data.banner;
  };
})();
</script>
</body>
</html>
`))

var confirmTmpl = template.Must(template.New("confirm").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Confirm unregister</title>
</head>
<body>
<main>
<p>Unregister {{.Email}} from {{.Activity}}?</p>
<form method="post" action="/unregister">
<input type="hidden" name="activity" value="{{.Activity}}">
<input type="hidden" name="email" value="{{.Email}}">
<button type="submit" name="confirm" value="yes">Yes</button>
<button type="submit" name="confirm" value="no">No</button>
</form>
</main>
</body>
</html>
`))
