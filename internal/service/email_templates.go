package service

import (
	"fmt"
	"time"
	_ "time/tzdata" // Europe/Bucharest on hosts without zoneinfo
)

var bucharest = loadBucharest()

func loadBucharest() *time.Location {
	loc, err := time.LoadLocation("Europe/Bucharest")
	if err != nil {
		return time.UTC
	}
	return loc
}

func greeting(name string) string {
	if name == "" {
		return "Bună ziua,"
	}
	return fmt.Sprintf("Bună ziua, %s,", name)
}

func uploadLinkEmailTemplate(name, uploadLink string, expiresAt time.Time, appName string) (string, string) {
	subject := fmt.Sprintf("Încărcați poze cu bunurile de mutat - %s", appName)
	body := fmt.Sprintf(`%s

Pentru a primi oferte cât mai exacte de la firmele de mutări, vă rugăm să încărcați poze sau un scurt video cu bunurile care trebuie mutate:
%s

Nu aveți nevoie de cont. Linkul poate fi folosit o singură dată și expiră pe %s.

Dacă nu ați solicitat acest email, îl puteți ignora.

Cu drag,
Echipa %s`, greeting(name), uploadLink, expiresAt.In(bucharest).Format("02.01.2006 15:04"), appName)

	return subject, body
}

func requestReceivedEmailTemplate(name, fromCity, toCity, requestURL, appName string) (string, string) {
	subject := fmt.Sprintf("Am primit cererea dvs. de mutare - %s", appName)
	body := fmt.Sprintf(`%s

Cererea dvs. de mutare %s → %s a fost înregistrată. Firmele de mutări partenere vă vor trimite oferte în curând.

Puteți urmări cererea aici:
%s

Cu drag,
Echipa %s`, greeting(name), fromCity, toCity, requestURL, appName)

	return subject, body
}
